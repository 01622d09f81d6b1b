package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses. A post is only publicly visible once approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Content       string             `bson:"content" json:"content"`
	Category      string             `bson:"category,omitempty" json:"category"`
	Image         string             `bson:"image,omitempty" json:"image"`
	Document      string             `bson:"document,omitempty" json:"document"`
	AuthorID      string             `bson:"authorId" json:"authorId"`
	Status        string             `bson:"status" json:"status"`
	Likes         []string           `bson:"likes" json:"likes"`
	NumberOfLikes int                `bson:"numberOfLikes" json:"numberOfLikes"`
	Bookmarks     []string           `bson:"bookmarks" json:"bookmarks"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
