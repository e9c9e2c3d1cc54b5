package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/jxnhiro/blog-api/internal/auth"
	apperrors "github.com/jxnhiro/blog-api/internal/errors"
	"github.com/jxnhiro/blog-api/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockUserRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		password     string
		userName     string
		setupMock    func(*MockUserRepository)
		expectedKind apperrors.Kind
		wantErr      bool
	}{
		{
			name:     "successful signup",
			email:    "a@x.com",
			password: "pw123",
			userName: "A",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, mongo.ErrNoDocuments)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = primitive.NewObjectID()
					}).
					Return(primitive.NewObjectID(), nil)
			},
		},
		{
			name:         "invalid email",
			email:        "not-an-email",
			password:     "pw123",
			userName:     "A",
			setupMock:    func(m *MockUserRepository) {},
			wantErr:      true,
			expectedKind: apperrors.Validation,
		},
		{
			name:         "password too short",
			email:        "a@x.com",
			password:     "pw",
			userName:     "A",
			setupMock:    func(m *MockUserRepository) {},
			wantErr:      true,
			expectedKind: apperrors.Validation,
		},
		{
			name:         "name missing",
			email:        "a@x.com",
			password:     "pw123",
			userName:     "",
			setupMock:    func(m *MockUserRepository) {},
			wantErr:      true,
			expectedKind: apperrors.Validation,
		},
		{
			name:     "email already registered",
			email:    "a@x.com",
			password: "totally-valid-password",
			userName: "A",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{Email: "a@x.com"}, nil)
			},
			wantErr:      true,
			expectedKind: apperrors.Conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			user, err := service.Signup(context.Background(), tt.email, tt.password, tt.userName)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperrors.IsKind(err, tt.expectedKind))
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, model.DefaultStatus, user.Status)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw123"), bcryptCost)
	userID := primitive.NewObjectID()

	tests := []struct {
		name         string
		email        string
		password     string
		setupMock    func(*MockUserRepository)
		expectedKind apperrors.Kind
		wantErr      bool
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
					ID:       userID,
					Email:    "a@x.com",
					Password: string(hashed),
				}, nil)
			},
		},
		{
			name:     "unknown email fails not found, never unauthorized",
			email:    "nobody@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, mongo.ErrNoDocuments)
			},
			wantErr:      true,
			expectedKind: apperrors.NotFound,
		},
		{
			name:     "wrong password fails unauthorized",
			email:    "a@x.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{
					ID:       userID,
					Email:    "a@x.com",
					Password: string(hashed),
				}, nil)
			},
			wantErr:      true,
			expectedKind: apperrors.Unauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			token, loggedInID, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperrors.IsKind(err, tt.expectedKind))
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, userID.Hex(), loggedInID)

				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, userID.Hex(), claims.UserID)
				assert.Equal(t, tt.email, claims.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
