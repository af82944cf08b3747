package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hisma-backend-go/internal/core"
	"hisma-backend-go/internal/models"
)

// SubscriptionHandler handles subscription lifecycle and quota endpoints.
type SubscriptionHandler struct {
	subscriptionService core.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(ss core.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: ss}
}

// mapSubscriptionErrorToStatus maps errors from core.SubscriptionService to
// HTTP status codes.
func mapSubscriptionErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrSubscriptionNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrSubscriptionNotFound.Error()}
	case errors.Is(err, core.ErrInvalidPlanType), errors.Is(err, core.ErrInvalidDuration):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: err.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// GetSubscription handles GET /lubricenters/:lubricenterId/subscription
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	lubricenterID := c.Param("lubricenterId")
	if lubricenterID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Lubricenter ID is required"})
		return
	}

	subscription, err := h.subscriptionService.GetByLubricenterID(c.Request.Context(), lubricenterID)
	if err != nil {
		mapSubscriptionErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, subscription)
}

// CheckSubscription handles GET /lubricenters/:lubricenterId/subscription/check.
// The result is the tagged validity outcome, not an error; an expired or
// missing subscription is still a 200 with Status EXPIRED.
func (h *SubscriptionHandler) CheckSubscription(c *gin.Context) {
	lubricenterID := c.Param("lubricenterId")
	if lubricenterID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Lubricenter ID is required"})
		return
	}

	result := h.subscriptionService.Check(c.Request.Context(), lubricenterID)
	c.JSON(http.StatusOK, result)
}

// RenewSubscription handles POST /lubricenters/:lubricenterId/subscription/renew
func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	lubricenterID := c.Param("lubricenterId")
	if lubricenterID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Lubricenter ID is required"})
		return
	}

	var req models.RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	subscription, err := h.subscriptionService.GetByLubricenterID(c.Request.Context(), lubricenterID)
	if err != nil {
		// No subscription yet: establish one instead of renewing.
		if errors.Is(err, core.ErrSubscriptionNotFound) {
			created, createErr := h.subscriptionService.Create(c.Request.Context(), lubricenterID, req.PlanType, req.DurationMonths, req.AutoRenew)
			if createErr != nil {
				mapSubscriptionErrorToStatus(c, createErr)
				return
			}
			c.JSON(http.StatusCreated, created)
			return
		}
		mapSubscriptionErrorToStatus(c, err)
		return
	}

	renewed, err := h.subscriptionService.Renew(c.Request.Context(), subscription.ID, req.PlanType, req.DurationMonths, req.AutoRenew)
	if err != nil {
		mapSubscriptionErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, renewed)
}
