package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jxnhiro/blog-api/internal/auth"
	"github.com/jxnhiro/blog-api/internal/service"
	"github.com/jxnhiro/blog-api/internal/storage"
)

// FeedHandler handles post and status endpoints.
type FeedHandler struct {
	feedService service.FeedService
	images      storage.ImageStore
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(feedService service.FeedService, images storage.ImageStore) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		images:      images,
	}
}

// StatusRequest represents a status update request.
type StatusRequest struct {
	Status string `json:"status"`
}

// GetPosts returns one page of posts plus the total item count.
func (h *FeedHandler) GetPosts(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}

	posts, totalItems, err := h.feedService.GetPosts(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Posts fetched successfully",
		"posts":      posts,
		"totalItems": totalItems,
	})
}

// GetPost returns a single post.
func (h *FeedHandler) GetPost(c echo.Context) error {
	post, err := h.feedService.GetPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Post successfully fetched",
		"post":    post,
	})
}

// CreatePost creates a post from a multipart form with an image file.
func (h *FeedHandler) CreatePost(c echo.Context) error {
	userID, _ := auth.UserID(c)

	imagePath, err := h.storeUploadedImage(c)
	if err != nil {
		return err
	}

	post, creator, err := h.feedService.CreatePost(
		c.Request().Context(),
		userID,
		c.FormValue("title"),
		c.FormValue("content"),
		imagePath,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Post created successfully!",
		"post":    post,
		"creator": creator.Summary(),
	})
}

// UpdatePost updates a post. An uploaded image file takes precedence over an
// image path supplied in the form body.
func (h *FeedHandler) UpdatePost(c echo.Context) error {
	userID, _ := auth.UserID(c)
	postID := c.Param("postId")

	imagePath, err := h.storeUploadedImage(c)
	if err != nil {
		return err
	}
	if imagePath == "" {
		imagePath = c.FormValue("image")
	}

	post, err := h.feedService.UpdatePost(
		c.Request().Context(),
		userID,
		postID,
		c.FormValue("title"),
		c.FormValue("content"),
		imagePath,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Post with ID %s is successfully updated!", postID),
		"post":    post,
	})
}

// DeletePost deletes a post owned by the caller.
func (h *FeedHandler) DeletePost(c echo.Context) error {
	userID, _ := auth.UserID(c)

	if err := h.feedService.DeletePost(c.Request().Context(), userID, c.Param("postId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Successfully deleted post",
	})
}

// GetStatus returns the caller's status.
func (h *FeedHandler) GetStatus(c echo.Context) error {
	userID, _ := auth.UserID(c)

	status, err := h.feedService.GetStatus(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": status,
	})
}

// UpdateStatus overwrites the caller's status.
func (h *FeedHandler) UpdateStatus(c echo.Context) error {
	userID, _ := auth.UserID(c)

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status, err := h.feedService.UpdateStatus(c.Request().Context(), userID, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status": status,
	})
}

// storeUploadedImage persists an uploaded "image" form file, if present, and
// returns its serving path.
func (h *FeedHandler) storeUploadedImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file attached
	}
	src, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer src.Close()

	return h.images.Store(src)
}
