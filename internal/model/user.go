package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultStatus is reported when a user never set a status.
const DefaultStatus = "no status set"

// User represents a registered author.
type User struct {
	ID       primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Email    string               `json:"email" bson:"email"`
	Password string               `json:"-" bson:"password"` // bcrypt hash, never exposed
	Name     string               `json:"name" bson:"name"`
	Status   string               `json:"status" bson:"status"`
	Posts    []primitive.ObjectID `json:"posts" bson:"posts"`
}

// CreatorSummary is the public slice of a user attached to post responses.
type CreatorSummary struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// Summary returns the public creator view of the user.
func (u *User) Summary() CreatorSummary {
	return CreatorSummary{ID: u.ID, Name: u.Name}
}
