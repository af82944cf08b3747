package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hisma-backend-go/internal/core"
	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
)

// AuthHandler handles registration and account recovery endpoints.
type AuthHandler struct {
	registrationService core.RegistrationService
	accounts            db.AuthAccounts
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(rs core.RegistrationService, accounts db.AuthAccounts) *AuthHandler {
	return &AuthHandler{registrationService: rs, accounts: accounts}
}

// mapRegistrationErrorToStatus maps errors from core.RegistrationService to
// HTTP status codes.
func mapRegistrationErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrCUITTaken):
		statusCode = http.StatusConflict
		errResponse = ErrorResponse{Error: core.ErrCUITTaken.Error()}
	case errors.Is(err, core.ErrPasswordTooShort):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrPasswordTooShort.Error()}
	case errors.Is(err, core.ErrLubricenterNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrLubricenterNotFound.Error()}
	default:
		// Partial registration failures land here too. The details string
		// names the failed step, which the frontend surfaces to the user.
		log.Printf("Registration error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "Registration failed", Details: err.Error()}
	}
	c.JSON(statusCode, errResponse)
}

// RegisterLubricenter handles POST /auth/register. Public endpoint; runs the
// owner sign-up flow and returns the created lubricenter.
func (h *AuthHandler) RegisterLubricenter(c *gin.Context) {
	var req models.RegisterLubricenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	lubricenter, err := h.registrationService.RegisterLubricenter(c.Request.Context(), req)
	if err != nil {
		mapRegistrationErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, lubricenter)
}

// RegisterEmployee handles POST /auth/employees. Authenticated; a shop admin
// creates an employee account attached to their lubricenter.
func (h *AuthHandler) RegisterEmployee(c *gin.Context) {
	var req models.RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.registrationService.RegisterEmployee(c.Request.Context(), req)
	if err != nil {
		mapRegistrationErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// RequestPasswordReset handles POST /auth/password-reset. Public endpoint.
// Always returns 200 for well-formed requests so the endpoint cannot be used
// to probe which emails are registered.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if _, err := h.accounts.SendPasswordResetLink(c.Request.Context(), req.Email); err != nil {
		log.Printf("Password reset request for %s failed: %v", req.Email, err)
	}
	c.JSON(http.StatusOK, PasswordResetResponse{Message: "If the email is registered, a reset link has been sent."})
}
