package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/handlers"
	"inkwell/middleware"
	"inkwell/models"
	"inkwell/services"
	"inkwell/store"
)

// stubAuth plays the auth boundary: the principal comes from test headers
// instead of a JWT.
func stubAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", c.GetHeader("X-Test-User"))
		role := c.GetHeader("X-Test-Role")
		if role == "" {
			role = models.RoleUser
		}
		c.Set("role", role)
		c.Next()
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	posts := store.NewMemory()
	comments := store.NewMemoryComments()
	h := handlers.NewPostHandler(
		services.NewQueryService(posts),
		services.NewPostService(posts, comments),
		services.NewModerationService(posts),
	)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/posts", h.GetPosts)

	protected := api.Group("")
	protected.Use(stubAuth())
	protected.POST("/post", h.CreatePost)
	protected.GET("/my/posts", h.GetMyPosts)
	protected.PUT("/post/:postId", h.UpdatePost)
	protected.DELETE("/post/:postId", h.DeletePost)
	protected.POST("/post/:postId/like", h.LikePost)
	protected.POST("/post/:postId/bookmark", h.BookmarkPost)
	protected.GET("/bookmarks", h.GetBookmarkedPosts)

	moderation := protected.Group("")
	moderation.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleCensor))
	moderation.PUT("/post/:postId/approve", h.ApprovePost)
	moderation.PUT("/post/:postId/reject", h.RejectPost)
	moderation.GET("/moderation/pending", h.GetPendingPosts)
	moderation.GET("/moderation/pending/:postId", h.GetPendingPost)

	return router
}

func do(t *testing.T, router *gin.Engine, method, path, user, role string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createPost(t *testing.T, router *gin.Engine, user, role, title string) string {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/api/post", user, role,
		gin.H{"title": title, "content": "some content"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	post := body["post"].(map[string]any)
	return post["id"].(string)
}

func TestCreatePostEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("user submission lands in the queue", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/post", "u1", models.RoleUser,
			gin.H{"title": "A User Post", "content": "body"})
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "Post created successfully", body["message"])
		assert.Equal(t, models.RoleUser, body["role"])
		post := body["post"].(map[string]any)
		assert.Equal(t, models.StatusPending, post["status"])
		assert.Equal(t, "a-user-post", post["slug"])
	})

	t.Run("censor publishes directly", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/post", "c1", models.RoleCensor,
			gin.H{"title": "A Censor Post", "content": "body"})
		require.Equal(t, http.StatusCreated, rec.Code)

		post := decode(t, rec)["post"].(map[string]any)
		assert.Equal(t, models.StatusApproved, post["status"])
	})

	t.Run("missing fields are a 400", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/post", "u1", models.RoleUser,
			gin.H{"title": "No Content"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate title is a 409", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/post", "u2", models.RoleUser,
			gin.H{"title": "A User Post", "content": "other body"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestPublicListingHidesModeration(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	pendingID := createPost(t, router, "u1", models.RoleUser, "Waiting Post")
	createPost(t, router, "a1", models.RoleAdmin, "Live Post")

	rec := do(t, router, http.MethodGet, "/api/posts", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "Live Post", posts[0].(map[string]any)["title"])
	assert.EqualValues(t, 1, body["totalPosts"])

	// Approval makes it public.
	rec = do(t, router, http.MethodPut, "/api/post/"+pendingID+"/approve", "a1", models.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Post has been approved", decode(t, rec)["message"])

	rec = do(t, router, http.MethodGet, "/api/posts", "", "", nil)
	body = decode(t, rec)
	assert.Len(t, body["posts"].([]any), 2)
}

func TestMyPostsEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	createPost(t, router, "u1", models.RoleUser, "Mine Pending")
	createPost(t, router, "u2", models.RoleUser, "Someone Elses")

	rec := do(t, router, http.MethodGet, "/api/my/posts", "u1", models.RoleUser, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "Mine Pending", posts[0].(map[string]any)["title"])
	assert.EqualValues(t, 1, body["totalPosts"])
	assert.EqualValues(t, 1, body["lastMonthPosts"])
}

func TestLikeAndBookmarkEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	id := createPost(t, router, "a1", models.RoleAdmin, "Popular Post")

	rec := do(t, router, http.MethodPost, "/api/post/"+id+"/like", "u1", models.RoleUser, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "liked post", body["message"])
	assert.EqualValues(t, 1, body["numberOfLikes"])

	rec = do(t, router, http.MethodPost, "/api/post/"+id+"/like", "u1", models.RoleUser, nil)
	body = decode(t, rec)
	assert.Equal(t, "Unliked post", body["message"])
	assert.EqualValues(t, 0, body["numberOfLikes"])

	rec = do(t, router, http.MethodPost, "/api/post/"+id+"/bookmark", "u1", models.RoleUser, nil)
	body = decode(t, rec)
	assert.Equal(t, "bookmarked", body["message"])
	assert.Equal(t, true, body["bookmarked"])

	rec = do(t, router, http.MethodGet, "/api/bookmarks", "u1", models.RoleUser, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bookmarked []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookmarked))
	require.Len(t, bookmarked, 1)
	assert.Equal(t, "Popular Post", bookmarked[0]["title"])

	rec = do(t, router, http.MethodPost, "/api/post/ffffffffffffffffffffffff/like", "u1", models.RoleUser, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnershipGate(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	id := createPost(t, router, "u1", models.RoleUser, "Guarded Post")

	t.Run("stranger cannot update", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/post/"+id, "u2", models.RoleUser,
			gin.H{"title": "Hijacked"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("owner updates, slug untouched", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/post/"+id, "u1", models.RoleUser,
			gin.H{"title": "Guarded Post v2", "category": "meta"})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "Guarded Post v2", body["title"])
		assert.Equal(t, "meta", body["category"])
		assert.Equal(t, "guarded-post", body["slug"])
	})

	t.Run("admin may delete another user's post", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/api/post/"+id, "a1", models.RoleAdmin, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, router, http.MethodDelete, "/api/post/"+id, "a1", models.RoleAdmin, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestModerationEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	id := createPost(t, router, "u1", models.RoleUser, "Queue Entry")

	t.Run("plain users are locked out", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/moderation/pending", "u1", models.RoleUser, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(t, router, http.MethodPut, "/api/post/"+id+"/approve", "u1", models.RoleUser, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("censor works the queue", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/moderation/pending", "c1", models.RoleCensor, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var queue []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &queue))
		require.Len(t, queue, 1)

		rec = do(t, router, http.MethodGet, "/api/moderation/pending/"+id, "c1", models.RoleCensor, nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, router, http.MethodPut, "/api/post/"+id+"/reject", "c1", models.RoleCensor, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Post has been rejected", decode(t, rec)["message"])

		// A rejected post is indistinguishable from a missing one here.
		rec = do(t, router, http.MethodGet, "/api/moderation/pending/"+id, "c1", models.RoleCensor, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
