package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkwell/models"
)

// Memory is an in-process PostStore/CommentStore with the same matching
// semantics as the MongoDB adapter. It backs the service and handler
// tests, which must run without a live database.
type Memory struct {
	mu    sync.Mutex
	posts []models.Post

	// Now is the clock used to refresh updatedAt; tests may replace it.
	Now func() time.Time
}

var (
	_ PostStore    = (*Memory)(nil)
	_ CommentStore = (*MemoryComments)(nil)
)

func NewMemory() *Memory {
	return &Memory{Now: time.Now}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matches(p models.Post, f PostFilter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.CreatedFrom != nil && p.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && !p.CreatedAt.Before(*f.CreatedTo) {
		return false
	}
	if f.Category != "" && !containsFold(p.Category, f.Category) {
		return false
	}
	if f.CategoryExact != "" && p.Category != f.CategoryExact {
		return false
	}
	if f.SearchTerm != "" && !containsFold(p.Title, f.SearchTerm) && !containsFold(p.Content, f.SearchTerm) {
		return false
	}
	if f.AuthorID != "" && p.AuthorID != f.AuthorID {
		return false
	}
	if f.Slug != "" && p.Slug != f.Slug {
		return false
	}
	if f.Title != "" && p.Title != f.Title {
		return false
	}
	if f.PostID != "" && p.ID.Hex() != f.PostID {
		return false
	}
	if f.BookmarkedBy != "" && !lo.Contains(p.Bookmarks, f.BookmarkedBy) {
		return false
	}
	return true
}

func sortKey(p models.Post, field string) int64 {
	switch field {
	case "numberOfLikes":
		return int64(p.NumberOfLikes)
	case "updatedAt":
		return p.UpdatedAt.UnixNano()
	default:
		return p.CreatedAt.UnixNano()
	}
}

func (m *Memory) Find(ctx context.Context, filter PostFilter, sortSpec SortSpec, page Page) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := lo.Filter(m.posts, func(p models.Post, _ int) bool {
		return matches(p, filter)
	})

	// Stable sort keeps insertion order across ties, matching the
	// store-native tie-breaking callers are allowed to rely on.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortKey(out[i], sortSpec.Field), sortKey(out[j], sortSpec.Field)
		if sortSpec.Descending {
			return a > b
		}
		return a < b
	})

	if page.Skip > 0 {
		if page.Skip >= int64(len(out)) {
			return []models.Post{}, nil
		}
		out = out[page.Skip:]
	}
	if page.Limit > 0 && int64(len(out)) > page.Limit {
		out = out[:page.Limit]
	}
	return out, nil
}

func (m *Memory) FindOne(ctx context.Context, filter PostFilter) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.posts {
		if matches(p, filter) {
			post := p
			return &post, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) FindByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		post := m.posts[i]
		return &post, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Count(ctx context.Context, filter PostFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(lo.CountBy(m.posts, func(p models.Post) bool {
		return matches(p, filter)
	})), nil
}

func (m *Memory) Insert(ctx context.Context, post *models.Post) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post.ID = primitive.NewObjectID()
	m.posts = append(m.posts, *post)
	return post.ID.Hex(), nil
}

func (m *Memory) indexOf(id string) int {
	for i, p := range m.posts {
		if p.ID.Hex() == id {
			return i
		}
	}
	return -1
}

func (m *Memory) Update(ctx context.Context, id string, patch PostPatch) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	p := &m.posts[i]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Document != nil {
		p.Document = *patch.Document
	}
	p.UpdatedAt = m.Now()

	post := *p
	return &post, nil
}

func (m *Memory) SetStatus(ctx context.Context, id string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.posts[i].Status = status
	m.posts[i].UpdatedAt = m.Now()
	return nil
}

func (m *Memory) SetLikes(ctx context.Context, id string, likes []string, numberOfLikes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.posts[i].Likes = likes
	m.posts[i].NumberOfLikes = numberOfLikes
	m.posts[i].UpdatedAt = m.Now()
	return nil
}

func (m *Memory) SetBookmarks(ctx context.Context, id string, bookmarks []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.posts[i].Bookmarks = bookmarks
	m.posts[i].UpdatedAt = m.Now()
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.posts = append(m.posts[:i], m.posts[i+1:]...)
	return nil
}

// MemoryComments is the in-process CommentStore counterpart.
type MemoryComments struct {
	mu       sync.Mutex
	comments []models.Comment
}

func NewMemoryComments() *MemoryComments {
	return &MemoryComments{}
}

func (m *MemoryComments) Insert(ctx context.Context, comment *models.Comment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comment.ID = primitive.NewObjectID()
	m.comments = append(m.comments, *comment)
	return comment.ID.Hex(), nil
}

func (m *MemoryComments) FindByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return lo.Filter(m.comments, func(c models.Comment, _ int) bool {
		return c.PostID == postID
	}), nil
}

func (m *MemoryComments) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.comments)
	m.comments = lo.Filter(m.comments, func(c models.Comment, _ int) bool {
		return c.PostID != postID
	})
	return int64(before - len(m.comments)), nil
}
