package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hisma-backend-go/internal/core"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// getUserID extracts the authenticated user's ID from the Gin context, set
// by the auth middleware.
func getUserID(c *gin.Context) (string, bool) {
	rawUserID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return "", false
	}
	userID, ok := rawUserID.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format in context"})
		return "", false
	}
	return userID, true
}

// GetCurrentUserProfile handles GET /users/me.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrUserNotFound.Error()})
			return
		}
		log.Printf("GetCurrentUserProfile: failed for userID %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch user profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}
