package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/services"
	"inkwell/store"
)

type PostHandler struct {
	queries    *services.QueryService
	posts      *services.PostService
	moderation *services.ModerationService
}

func NewPostHandler(queries *services.QueryService, posts *services.PostService, moderation *services.ModerationService) *PostHandler {
	return &PostHandler{queries: queries, posts: posts, moderation: moderation}
}

func listParams(c *gin.Context) services.ListParams {
	return services.ListParams{
		StartIndex: c.Query("startIndex"),
		Limit:      c.Query("limit"),
		SortBy:     c.Query("sortBy"),
		Order:      c.Query("sort"),
		TimePeriod: c.Query("timePeriod"),
		Category:   c.Query("category"),
		AuthorID:   c.Query("userId"),
		Slug:       c.Query("slug"),
		PostID:     c.Query("postId"),
		SearchTerm: c.Query("searchTerm"),
	}
}

// GetPosts is the public listing. Unknown filter values fall back to
// their defaults rather than failing the request.
func (h *PostHandler) GetPosts(c *gin.Context) {
	result, err := h.queries.List(c.Request.Context(), listParams(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMyPosts lists the requester's posts regardless of status. The legacy
// client sends userId explicitly; when absent, the authenticated
// principal is the author.
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	params := listParams(c)
	params.Order = c.Query("order")
	if params.AuthorID == "" {
		params.AuthorID = principal(c).ID
	}

	result, err := h.queries.ListMine(c.Request.Context(), params)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req services.CreatePostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := principal(c)
	post, err := h.posts.Create(c.Request.Context(), req, actor)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
		"role":    actor.Role,
	})
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Image    *string `json:"image"`
	Document *string `json:"document"`
}

// requireOwnership loads the post and rejects principals who neither own
// it nor hold the admin role.
func (h *PostHandler) requireOwnership(c *gin.Context) (*models.Post, bool) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("postId"))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}

	actor := principal(c)
	if post.AuthorID != actor.ID && actor.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to modify this post"})
		return nil, false
	}
	return post, true
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	if _, ok := h.requireOwnership(c); !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.Update(c.Request.Context(), c.Param("postId"), store.PostPatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
		Document: req.Document,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if _, ok := h.requireOwnership(c); !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), c.Param("postId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, "The post and its comments have been deleted")
}

func (h *PostHandler) LikePost(c *gin.Context) {
	liked, numberOfLikes, err := h.posts.ToggleLike(c.Request.Context(), c.Param("postId"), principal(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	message := "Unliked post"
	if liked {
		message = "liked post"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       message,
		"numberOfLikes": numberOfLikes,
	})
}

func (h *PostHandler) BookmarkPost(c *gin.Context) {
	bookmarked, err := h.posts.ToggleBookmark(c.Request.Context(), c.Param("postId"), principal(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	message := "unbookmark"
	if bookmarked {
		message = "bookmarked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"bookmarked": bookmarked,
	})
}

func (h *PostHandler) GetBookmarkedPosts(c *gin.Context) {
	posts, err := h.posts.ListBookmarked(c.Request.Context(), principal(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ApprovePost(c *gin.Context) {
	if err := h.moderation.Approve(c.Request.Context(), c.Param("postId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post has been approved"})
}

func (h *PostHandler) RejectPost(c *gin.Context) {
	if err := h.moderation.Reject(c.Request.Context(), c.Param("postId")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post has been rejected"})
}

func (h *PostHandler) GetPendingPosts(c *gin.Context) {
	posts, err := h.moderation.ListPending(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPendingPost(c *gin.Context) {
	post, err := h.moderation.GetPending(c.Request.Context(), c.Param("postId"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
