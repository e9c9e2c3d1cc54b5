package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/jxnhiro/blog-api/internal/auth"
	apperrors "github.com/jxnhiro/blog-api/internal/errors"
	"github.com/jxnhiro/blog-api/internal/model"
	"github.com/jxnhiro/blog-api/internal/repository"
)

const bcryptCost = 12

var validate = validator.New()

// AuthService handles signup and login.
type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token, userID string, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
	}
}

// Signup validates the input, rejects duplicate emails and creates the user
// with a hashed password.
func (s *authService) Signup(ctx context.Context, email, password, name string) (*model.User, error) {
	var details []string
	if err := validate.Var(email, "required,email"); err != nil {
		details = append(details, "email is invalid")
	}
	if err := validate.Var(password, "required,min=5"); err != nil {
		details = append(details, "password is too short")
	}
	if err := validate.Var(name, "required"); err != nil {
		details = append(details, "name is required")
	}
	if len(details) > 0 {
		return nil, apperrors.New(apperrors.Validation, "user criteria validation failed", details...)
	}

	// Any existing user with that email blocks the signup.
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.New(apperrors.Conflict, "user exists already")
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.WithStatus(apperrors.Internal, http.StatusBadRequest, "failed to check for existing user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.WithStatus(apperrors.Internal, http.StatusBadRequest, "failed to encrypt password")
	}

	user := &model.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Status:   model.DefaultStatus,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WithStatus(apperrors.Internal, http.StatusBadRequest, "failed to save user")
	}

	return user, nil
}

// Login verifies the credentials and issues an identity token.
func (s *authService) Login(ctx context.Context, email, password string) (token, userID string, err error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", "", apperrors.New(apperrors.NotFound, "user could not be found")
		}
		return "", "", apperrors.New(apperrors.Internal, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apperrors.New(apperrors.Unauthenticated, "password is incorrect")
	}

	userID = user.ID.Hex()
	token, err = s.jwtService.GenerateToken(userID, user.Email)
	if err != nil {
		return "", "", apperrors.New(apperrors.Internal, "failed to issue token")
	}

	return token, userID, nil
}
