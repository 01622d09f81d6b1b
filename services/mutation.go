package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"inkwell/models"
	"inkwell/store"
)

// PostService owns post writes: creation with slug derivation and
// uniqueness checks, content updates, cascading deletion, and the
// like/bookmark toggles.
//
// Toggles are read-modify-write with no compare-and-swap: two concurrent
// toggles on the same post can stomp each other's like set. Social
// counters tolerate that drift; callers must not rely on exact counts
// under contention.
type PostService struct {
	posts    store.PostStore
	comments store.CommentStore
	now      func() time.Time
}

func NewPostService(posts store.PostStore, comments store.CommentStore) *PostService {
	return &PostService{posts: posts, comments: comments, now: time.Now}
}

var slugStrip = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// Slugify derives the URL slug from a title: spaces become hyphens, the
// result is lowercased, and every remaining disallowed rune is replaced
// by a hyphen. Runs of hyphens are kept as-is so existing slugs stay
// reproducible.
func Slugify(title string) string {
	slug := strings.Join(strings.Split(title, " "), "-")
	slug = strings.ToLower(slug)
	return slugStrip.ReplaceAllString(slug, "-")
}

type CreatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Document string `json:"document"`
}

// Create inserts a new post for actor. Admins and censors publish
// directly; everyone else starts in the moderation queue.
func (s *PostService) Create(ctx context.Context, in CreatePostInput, actor models.Principal) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, invalidInput("Please provide all required fields")
	}

	if _, err := s.posts.FindOne(ctx, store.PostFilter{Title: in.Title}); err == nil {
		return nil, conflict("Title already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	slug := Slugify(in.Title)
	if _, err := s.posts.FindOne(ctx, store.PostFilter{Slug: slug}); err == nil {
		return nil, conflict("Slug already exists. Please modify the title.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	status := models.StatusPending
	if actor.IsModerator() {
		status = models.StatusApproved
	}

	now := s.now()
	post := &models.Post{
		Title:     in.Title,
		Slug:      slug,
		Content:   in.Content,
		Category:  in.Category,
		Image:     in.Image,
		Document:  in.Document,
		AuthorID:  actor.ID,
		Status:    status,
		Likes:     []string{},
		Bookmarks: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.posts.Insert(ctx, post)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, internal("Failed to save post: Missing postId")
	}
	return post, nil
}

// Get fetches a post by id.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Post not found")
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Update replaces the mutable content fields of a post. The slug is not
// re-derived on a title change, so a renamed post keeps its original URL.
func (s *PostService) Update(ctx context.Context, postID string, patch store.PostPatch) (*models.Post, error) {
	post, err := s.posts.Update(ctx, postID, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Post not found")
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post's comments, then the post itself. The two
// deletes are not transactional; a failure in between leaves the post
// without its comments.
func (s *PostService) Delete(ctx context.Context, postID string) error {
	if _, err := s.comments.DeleteByPost(ctx, postID); err != nil {
		return err
	}

	err := s.posts.Delete(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Post not found")
	}
	return err
}

// ToggleLike flips userID's membership in the post's like set, keeping
// numberOfLikes equal to the set size. It reports the resulting
// membership and counter.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (liked bool, numberOfLikes int, err error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return false, 0, notFound("post not found")
	}
	if err != nil {
		return false, 0, err
	}

	likes, liked := models.ToggleMember(post.Likes, userID)
	if err := s.posts.SetLikes(ctx, postID, likes, len(likes)); err != nil {
		return false, 0, err
	}
	return liked, len(likes), nil
}

// ToggleBookmark flips userID's membership in the post's bookmark set.
// There is no bookmark counter.
func (s *PostService) ToggleBookmark(ctx context.Context, postID, userID string) (bookmarked bool, err error) {
	post, err := s.posts.FindByID(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		return false, notFound("post not found")
	}
	if err != nil {
		return false, err
	}

	bookmarks, bookmarked := models.ToggleMember(post.Bookmarks, userID)
	if err := s.posts.SetBookmarks(ctx, postID, bookmarks); err != nil {
		return false, err
	}
	return bookmarked, nil
}

// ListBookmarked returns every post the user has bookmarked, unpaginated.
func (s *PostService) ListBookmarked(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.posts.Find(ctx, store.PostFilter{BookmarkedBy: userID},
		store.SortSpec{Field: sortByCreatedAt, Descending: false}, store.Page{})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}
