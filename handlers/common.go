package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/models"
	"inkwell/services"
)

// principal reads the actor the auth middleware attached to the request.
func principal(c *gin.Context) models.Principal {
	return models.Principal{
		ID:   c.GetString("userId"),
		Role: c.GetString("role"),
	}
}

// abortWithError maps the service error taxonomy onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	switch services.CodeOf(err) {
	case services.CodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case services.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
