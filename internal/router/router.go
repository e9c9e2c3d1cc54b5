package router

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jxnhiro/blog-api/internal/auth"
	"github.com/jxnhiro/blog-api/internal/config"
	apperrors "github.com/jxnhiro/blog-api/internal/errors"
	"github.com/jxnhiro/blog-api/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	feedHandler *handler.FeedHandler,
	graphqlHandler *handler.GraphQLHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Uploaded images are served statically.
	e.Static("/images", cfg.ImageDir)

	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)

	// Post routes sit behind the strict gate: a missing or invalid token is
	// rejected at the boundary.
	feed := e.Group("/feed", auth.RequireAuth(cfg.JWTSecret))
	feed.GET("/posts", feedHandler.GetPosts)
	feed.POST("/post", feedHandler.CreatePost)
	feed.GET("/post/:postId", feedHandler.GetPost)
	feed.PUT("/post/:postId", feedHandler.UpdatePost)
	feed.DELETE("/post/:postId", feedHandler.DeletePost)

	// Status routes pass the lenient gate; the service reports Forbidden
	// when no identity arrives.
	status := e.Group("/feed", auth.OptionalAuth(jwtService))
	status.GET("/status", feedHandler.GetStatus)
	status.PATCH("/status", feedHandler.UpdateStatus)

	// GraphQL enforces authentication per resolver.
	e.POST("/graphql", graphqlHandler.Handle, auth.OptionalAuth(jwtService))
}

// errorHandler renders every failure as {message, description}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	description := "internal server error"

	var appErr *apperrors.Error
	var httpErr *echo.HTTPError
	switch {
	case stderrors.As(err, &appErr):
		statusCode = appErr.StatusCode
		description = appErr.Message
	case stderrors.As(err, &httpErr):
		statusCode = httpErr.Code
		description = fmt.Sprintf("%v", httpErr.Message)
	}

	if jsonErr := c.JSON(statusCode, echo.Map{
		"message":     fmt.Sprintf("Error %d", statusCode),
		"description": description,
	}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}
