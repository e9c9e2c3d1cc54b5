package service

import (
	"context"
	"errors"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/jxnhiro/blog-api/internal/errors"
	"github.com/jxnhiro/blog-api/internal/model"
	"github.com/jxnhiro/blog-api/internal/repository"
	"github.com/jxnhiro/blog-api/internal/storage"
)

// PostsPerPage is the fixed feed page size.
const PostsPerPage = 2

// FeedService orchestrates post and status operations. Every mutation follows
// the same sequence: authorize, validate, load, apply, persist.
type FeedService interface {
	GetPosts(ctx context.Context, page int) (posts []model.Post, totalItems int64, err error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	CreatePost(ctx context.Context, userID, title, content, imageURL string) (*model.Post, *model.User, error)
	UpdatePost(ctx context.Context, userID, postID, title, content, imageURL string) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	GetStatus(ctx context.Context, userID string) (string, error)
	UpdateStatus(ctx context.Context, userID, status string) (string, error)
}

type feedService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	images storage.ImageStore
}

// NewFeedService creates a new feed service.
func NewFeedService(posts repository.PostRepository, users repository.UserRepository, images storage.ImageStore) FeedService {
	return &feedService{
		posts:  posts,
		users:  users,
		images: images,
	}
}

// GetPosts returns one page of posts plus the total count.
func (s *feedService) GetPosts(ctx context.Context, page int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	totalItems, err := s.posts.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.New(apperrors.Internal, "failed to count posts")
	}

	skip := int64(page-1) * PostsPerPage
	posts, err := s.posts.FindPage(ctx, skip, PostsPerPage)
	if err != nil {
		return nil, 0, apperrors.New(apperrors.Internal, "failed to fetch posts")
	}

	return posts, totalItems, nil
}

// GetPost returns a single post by id.
func (s *feedService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	return s.loadPost(ctx, postID)
}

// CreatePost validates the input, persists the post with the caller as
// creator and appends the post reference to the creator's posts list.
// A post-save failure and a creator-list failure surface as distinct errors;
// there is no rollback of the saved post.
func (s *feedService) CreatePost(ctx context.Context, userID, title, content, imageURL string) (*model.Post, *model.User, error) {
	creatorID, err := s.requireIdentity(userID, apperrors.Unauthenticated)
	if err != nil {
		return nil, nil, err
	}
	if err := validatePostInput(title, content); err != nil {
		return nil, nil, err
	}
	if imageURL == "" {
		return nil, nil, apperrors.New(apperrors.Validation, "no image is found")
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		Creator:  creatorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, nil, apperrors.New(apperrors.Internal, "failed to save post")
	}

	creator, err := s.users.FindByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, apperrors.New(apperrors.Unauthenticated, "invalid user")
		}
		return nil, nil, apperrors.New(apperrors.Internal, "failed to load creator")
	}

	if err := s.users.AddPost(ctx, creatorID, post.ID); err != nil {
		return nil, nil, apperrors.New(apperrors.Internal, "failed to update creator's posts")
	}
	creator.Posts = append(creator.Posts, post.ID)

	return post, creator, nil
}

// UpdatePost applies title, content and image to a post owned by the caller.
// A replaced image is removed best-effort: a failed delete is logged and
// never aborts the mutation.
func (s *feedService) UpdatePost(ctx context.Context, userID, postID, title, content, imageURL string) (*model.Post, error) {
	if _, err := s.requireIdentity(userID, apperrors.Unauthenticated); err != nil {
		return nil, err
	}

	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Creator.Hex() != userID {
		return nil, apperrors.New(apperrors.Forbidden, "user has no permission to update post")
	}

	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}
	if imageURL == "" {
		return nil, apperrors.New(apperrors.Validation, "no file picked")
	}

	if imageURL != post.ImageURL {
		if err := s.images.Delete(post.ImageURL); err != nil {
			log.Printf("warning: could not remove replaced image %s: %v", post.ImageURL, err)
		}
	}

	post.Title = title
	post.Content = content
	post.ImageURL = imageURL
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, apperrors.New(apperrors.Internal, "failed to save post")
	}

	return post, nil
}

// DeletePost removes a post owned by the caller, its stored image and the
// reference in the owner's posts list.
func (s *feedService) DeletePost(ctx context.Context, userID, postID string) error {
	if _, err := s.requireIdentity(userID, apperrors.Unauthenticated); err != nil {
		return err
	}

	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.Creator.Hex() != userID {
		return apperrors.New(apperrors.Forbidden, "user is not authorized to delete post")
	}

	if err := s.images.Delete(post.ImageURL); err != nil {
		log.Printf("warning: could not remove image %s of deleted post: %v", post.ImageURL, err)
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return apperrors.New(apperrors.Internal, "failed to delete post")
	}
	if err := s.users.RemovePost(ctx, post.Creator, post.ID); err != nil {
		return apperrors.New(apperrors.Internal, "failed to update creator's posts")
	}

	return nil
}

// GetStatus returns the caller's status, or the default placeholder.
func (s *feedService) GetStatus(ctx context.Context, userID string) (string, error) {
	id, err := s.requireIdentity(userID, apperrors.Forbidden)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.New(apperrors.NotFound, "user could not be found")
		}
		return "", apperrors.New(apperrors.Internal, "failed to load user")
	}

	if user.Status == "" {
		return model.DefaultStatus, nil
	}
	return user.Status, nil
}

// UpdateStatus overwrites the caller's status.
func (s *feedService) UpdateStatus(ctx context.Context, userID, status string) (string, error) {
	id, err := s.requireIdentity(userID, apperrors.Forbidden)
	if err != nil {
		return "", err
	}
	if status == "" {
		return "", apperrors.WithStatus(apperrors.Validation, http.StatusBadRequest, "status must not be empty")
	}

	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.New(apperrors.NotFound, "user could not be found")
		}
		return "", apperrors.WithStatus(apperrors.Internal, http.StatusBadRequest, "failed to update status")
	}

	return status, nil
}

// requireIdentity rejects absent or malformed identities with the given kind.
// Post mutations report Unauthenticated, status operations Forbidden.
func (s *feedService) requireIdentity(userID string, kind apperrors.Kind) (primitive.ObjectID, error) {
	if userID == "" {
		return primitive.NilObjectID, apperrors.New(kind, "not authenticated")
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperrors.New(kind, "not authenticated")
	}
	return id, nil
}

func (s *feedService) loadPost(ctx context.Context, postID string) (*model.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperrors.New(apperrors.NotFound, "there is no post with that ID")
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "there is no post with that ID")
		}
		return nil, apperrors.New(apperrors.Internal, "failed to load post")
	}
	return post, nil
}

func validatePostInput(title, content string) error {
	var details []string
	if err := validate.Var(title, "required,min=5"); err != nil {
		details = append(details, "title is too short")
	}
	if err := validate.Var(content, "required,min=5"); err != nil {
		details = append(details, "content is too short")
	}
	if len(details) > 0 {
		return apperrors.New(apperrors.Validation, "entered data has the incorrect format", details...)
	}
	return nil
}
