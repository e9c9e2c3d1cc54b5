package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jxnhiro/blog-api/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	AddPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new user repository over the users collection.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection("users")}
}

// Create inserts a new user and returns the assigned id.
func (r *userRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	if user.Posts == nil {
		user.Posts = []primitive.ObjectID{}
	}
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, mongo.ErrNilDocument
	}
	user.ID = id
	return id, nil
}

// FindByEmail finds a user by email. Returns mongo.ErrNoDocuments when absent.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID finds a user by id. Returns mongo.ErrNoDocuments when absent.
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateStatus overwrites the user's status.
func (r *userRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddPost appends a post reference to the user's posts list.
func (r *userRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"posts": postID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemovePost removes a post reference from the user's posts list.
func (r *userRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
