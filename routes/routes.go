package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"inkwell/handlers"
	"inkwell/middleware"
	"inkwell/models"
)

func SetupRouter(posts *handlers.PostHandler) *gin.Engine {
	router := gin.Default()

	// Add health check endpoint for testing
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Inkwell API is running",
			"time":    time.Now().Unix(),
		})
	})

	// CORS configuration for the browser client
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware())

	// Public routes (no auth required)
	api.GET("/posts", posts.GetPosts)

	// Protected routes group
	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())

	// Posts
	protected.POST("/post", posts.CreatePost)
	protected.GET("/my/posts", posts.GetMyPosts)
	protected.PUT("/post/:postId", posts.UpdatePost)
	protected.DELETE("/post/:postId", posts.DeletePost)

	// Likes and bookmarks
	protected.POST("/post/:postId/like", posts.LikePost)
	protected.POST("/post/:postId/bookmark", posts.BookmarkPost)
	protected.GET("/bookmarks", posts.GetBookmarkedPosts)

	// Moderation (admin/censor only)
	moderation := protected.Group("")
	moderation.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleCensor))
	moderation.PUT("/post/:postId/approve", posts.ApprovePost)
	moderation.PUT("/post/:postId/reject", posts.RejectPost)
	moderation.GET("/moderation/pending", posts.GetPendingPosts)
	moderation.GET("/moderation/pending/:postId", posts.GetPendingPost)

	// Add a catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error":   "Endpoint not found",
				"path":    c.Request.URL.Path,
				"message": "Check the API documentation for available endpoints",
			})
			return
		}
		c.Next()
	})

	return router
}
