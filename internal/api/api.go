package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/service"
)

// currentUserID reads the authenticated user id placed in the context by
// the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// handleServiceError maps service errors onto status codes. Unknown errors
// are logged and reported as a generic server failure.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound), errors.Is(err, service.ErrSaveNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthor), errors.Is(err, service.ErrOwnRecipe):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyRated), errors.Is(err, service.ErrAlreadySaved),
		errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("unexpected service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
