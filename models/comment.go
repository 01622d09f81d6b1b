package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is owned by the comment subsystem; the post core only needs its
// shape for the cascading delete when a post is removed.
type Comment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID        string             `bson:"postId" json:"postId"`
	UserID        string             `bson:"userId" json:"userId"`
	Content       string             `bson:"content" json:"content"`
	NumberOfLikes int                `bson:"numberOfLikes" json:"numberOfLikes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
