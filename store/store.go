package store

import (
	"context"
	"errors"
	"time"

	"inkwell/models"
)

// ErrNotFound is returned by lookups that match no document.
var ErrNotFound = errors.New("store: not found")

// PostFilter describes a read-time predicate over posts. Zero-valued
// fields impose no constraint; set fields are combined with logical AND.
type PostFilter struct {
	Status string

	// Creation-time window, [CreatedFrom, CreatedTo).
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// Category, case-insensitive substring match.
	Category string
	// CategoryExact matches the category verbatim (own-posts listing).
	CategoryExact string

	// SearchTerm matches title OR content, case-insensitive substring.
	SearchTerm string

	// Identity filters, exact match.
	AuthorID string
	Slug     string
	Title    string
	PostID   string

	// BookmarkedBy matches posts whose bookmark set contains the user.
	BookmarkedBy string
}

// SortSpec names the field to order by and the direction.
type SortSpec struct {
	Field      string
	Descending bool
}

// Page is a skip/limit window. Limit 0 means no limit.
type Page struct {
	Skip  int64
	Limit int64
}

// PostPatch lists exactly the mutable content fields of a post. Nil
// pointers leave the stored value untouched.
type PostPatch struct {
	Title    *string
	Content  *string
	Category *string
	Image    *string
	Document *string
}

// PostStore is the document collection the post services run against.
// Implementations must generate ids on insert and refresh updatedAt on
// every write.
type PostStore interface {
	Find(ctx context.Context, filter PostFilter, sort SortSpec, page Page) ([]models.Post, error)
	FindOne(ctx context.Context, filter PostFilter) (*models.Post, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)

	// Insert stores the post and returns the generated id ("" when the
	// store failed to produce one).
	Insert(ctx context.Context, post *models.Post) (string, error)

	Update(ctx context.Context, id string, patch PostPatch) (*models.Post, error)
	SetStatus(ctx context.Context, id string, status string) error
	SetLikes(ctx context.Context, id string, likes []string, numberOfLikes int) error
	SetBookmarks(ctx context.Context, id string, bookmarks []string) error
	Delete(ctx context.Context, id string) error
}

// CommentStore is the slice of the comment collection the post core
// touches: cascading deletion when a post is removed.
type CommentStore interface {
	Insert(ctx context.Context, comment *models.Comment) (string, error)
	FindByPost(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}
