package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a single feed entry. Creator is immutable after creation.
type Post struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	ImageURL  string             `json:"imageUrl" bson:"imageUrl"`
	Creator   primitive.ObjectID `json:"creator" bson:"creator"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
