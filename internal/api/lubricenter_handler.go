package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hisma-backend-go/internal/core"
	"hisma-backend-go/internal/models"
)

// Logos larger than this are rejected before touching object storage.
const maxLogoBytes = 2 << 20 // 2 MiB

// LubricenterHandler handles shop profile endpoints.
type LubricenterHandler struct {
	lubricenterService core.LubricenterService
}

// NewLubricenterHandler creates a new LubricenterHandler.
func NewLubricenterHandler(ls core.LubricenterService) *LubricenterHandler {
	return &LubricenterHandler{lubricenterService: ls}
}

// mapLubricenterErrorToStatus maps errors from core.LubricenterService to
// HTTP status codes.
func mapLubricenterErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrLubricenterNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrLubricenterNotFound.Error()}
	case errors.Is(err, core.ErrNotShopMember):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: core.ErrNotShopMember.Error()}
	case errors.Is(err, core.ErrNoLubricenter):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrNoLubricenter.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// GetLubricenter handles GET /lubricenters/:lubricenterId
func (h *LubricenterHandler) GetLubricenter(c *gin.Context) {
	lubricenterID := c.Param("lubricenterId")
	if lubricenterID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Lubricenter ID is required"})
		return
	}

	lubricenter, err := h.lubricenterService.GetByID(c.Request.Context(), lubricenterID)
	if err != nil {
		mapLubricenterErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, lubricenter)
}

// UpdateLubricenter handles PUT /lubricenters/:lubricenterId
func (h *LubricenterHandler) UpdateLubricenter(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	lubricenterID := c.Param("lubricenterId")
	if lubricenterID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Lubricenter ID is required"})
		return
	}

	var req models.UpdateLubricenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	lubricenter, err := h.lubricenterService.Update(c.Request.Context(), userID, lubricenterID, req)
	if err != nil {
		mapLubricenterErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, lubricenter)
}

// UploadLogo handles POST /lubricenters/:lubricenterId/logo. The request body
// is the raw image; the Content-Type header selects the stored format.
func (h *LubricenterHandler) UploadLogo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	lubricenterID := c.Param("lubricenterId")
	if lubricenterID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Lubricenter ID is required"})
		return
	}

	image, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLogoBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read image body", Details: err.Error()})
		return
	}
	if len(image) > maxLogoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Logo image exceeds the 2 MiB limit"})
		return
	}

	logoURL, err := h.lubricenterService.SetLogo(c.Request.Context(), userID, lubricenterID, image, c.ContentType())
	if err != nil {
		mapLubricenterErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logo updated", Data: gin.H{"logoUrl": logoURL}})
}
