package services

import (
	"context"
	"time"

	"inkwell/models"
	"inkwell/store"
)

// QueryService composes predicate, sort and page into post listings. It
// is read-only; the list and its counts come from separate store reads,
// so a concurrent writer can skew them against each other. Both are
// display values and the skew is tolerated.
type QueryService struct {
	posts store.PostStore
	now   func() time.Time
}

func NewQueryService(posts store.PostStore) *QueryService {
	return &QueryService{posts: posts, now: time.Now}
}

type ListResult struct {
	Posts      []models.Post `json:"posts"`
	TotalPosts int64         `json:"totalPosts"`
}

type OwnListResult struct {
	Posts          []models.Post `json:"posts"`
	TotalPosts     int64         `json:"totalPosts"`
	LastMonthPosts int64         `json:"lastMonthPosts"`
}

// List is the public listing: approved posts only. The total deliberately
// counts on status, time window and category alone — search and identity
// filters narrow the page but not the total. Existing clients depend on
// these totals, so the asymmetry stays.
func (s *QueryService) List(ctx context.Context, p ListParams) (*ListResult, error) {
	now := s.now()

	posts, err := s.posts.Find(ctx, publicFilter(p, now),
		resolveSort(p.SortBy, p.Order), resolvePage(p.StartIndex, p.Limit))
	if err != nil {
		return nil, err
	}

	from, to := timeWindow(p.TimePeriod, now)
	total, err := s.posts.Count(ctx, store.PostFilter{
		Status:      models.StatusApproved,
		CreatedFrom: from,
		CreatedTo:   to,
		Category:    p.Category,
	})
	if err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []models.Post{}
	}
	return &ListResult{Posts: posts, TotalPosts: total}, nil
}

// ListMine lists a user's own posts regardless of status, newest update
// first unless asked otherwise, with a trailing-month creation count for
// the dashboard. The total counts on the author alone.
func (s *QueryService) ListMine(ctx context.Context, p ListParams) (*OwnListResult, error) {
	sortSpec := store.SortSpec{Field: sortByUpdatedAt, Descending: p.Order != "asc"}

	posts, err := s.posts.Find(ctx, ownFilter(p), sortSpec, resolvePage(p.StartIndex, p.Limit))
	if err != nil {
		return nil, err
	}

	total, err := s.posts.Count(ctx, store.PostFilter{AuthorID: p.AuthorID})
	if err != nil {
		return nil, err
	}

	boundary := oneMonthAgo(s.now())
	lastMonth, err := s.posts.Count(ctx, store.PostFilter{
		AuthorID:    p.AuthorID,
		CreatedFrom: &boundary,
	})
	if err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []models.Post{}
	}
	return &OwnListResult{Posts: posts, TotalPosts: total, LastMonthPosts: lastMonth}, nil
}
