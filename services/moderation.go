package services

import (
	"context"
	"errors"

	"inkwell/models"
	"inkwell/store"
)

// ModerationService drives the pending → approved | rejected lifecycle.
// Approved and rejected are terminal; there is no path back to pending.
type ModerationService struct {
	posts store.PostStore
}

func NewModerationService(posts store.PostStore) *ModerationService {
	return &ModerationService{posts: posts}
}

// Approve publishes a post. Approving an already-approved post re-sets
// the same status and succeeds.
func (s *ModerationService) Approve(ctx context.Context, postID string) error {
	return s.setStatus(ctx, postID, models.StatusApproved)
}

// Reject keeps a post out of public listings. Like Approve, it is
// permissive about the current status.
func (s *ModerationService) Reject(ctx context.Context, postID string) error {
	return s.setStatus(ctx, postID, models.StatusRejected)
}

func (s *ModerationService) setStatus(ctx context.Context, postID, status string) error {
	err := s.posts.SetStatus(ctx, postID, status)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Post not found")
	}
	return err
}

// ListPending returns the moderation queue, most recently updated first.
func (s *ModerationService) ListPending(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.Find(ctx, store.PostFilter{Status: models.StatusPending},
		store.SortSpec{Field: sortByUpdatedAt, Descending: true}, store.Page{})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// GetPending fetches a single queue entry. A post that has since been
// approved or rejected is indistinguishable from a missing one here.
func (s *ModerationService) GetPending(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.FindOne(ctx, store.PostFilter{PostID: postID, Status: models.StatusPending})
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Pending post not found")
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}
