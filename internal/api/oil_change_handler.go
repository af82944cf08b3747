package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hisma-backend-go/internal/core"
	"hisma-backend-go/internal/models"
)

// OilChangeHandler handles oil-change record endpoints. All operations are
// scoped to the authenticated user's lubricenter.
type OilChangeHandler struct {
	oilChangeService core.OilChangeService
}

// NewOilChangeHandler creates a new OilChangeHandler.
func NewOilChangeHandler(os core.OilChangeService) *OilChangeHandler {
	return &OilChangeHandler{oilChangeService: os}
}

// mapOilChangeErrorToStatus maps errors from core.OilChangeService to HTTP
// status codes.
func mapOilChangeErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrRecordNotFound.Error(), Details: err.Error()}
	case errors.Is(err, core.ErrInvalidPlate), errors.Is(err, core.ErrMissingCustomerName):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrSubscriptionExpired):
		// 402 matches the business condition: the shop must renew to record
		// further services.
		statusCode = http.StatusPaymentRequired
		errResponse = ErrorResponse{Error: core.ErrSubscriptionExpired.Error(), Details: err.Error()}
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

// CreateOilChange handles POST /oil-changes
func (h *OilChangeHandler) CreateOilChange(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req models.OilChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	record, err := h.oilChangeService.Create(c.Request.Context(), userID, req)
	if err != nil {
		// The record may exist even when usage accounting failed; that
		// variant still returns it so the client does not retry a duplicate.
		if record != nil {
			log.Printf("CreateOilChange: record %s saved with accounting warning: %v", record.ID, err)
			c.JSON(http.StatusCreated, record)
			return
		}
		mapOilChangeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListOilChanges handles GET /oil-changes?q=searchTerm
func (h *OilChangeHandler) ListOilChanges(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	records, err := h.oilChangeService.List(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		mapOilChangeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetOilChange handles GET /oil-changes/:recordId
func (h *OilChangeHandler) GetOilChange(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Record ID is required"})
		return
	}

	record, err := h.oilChangeService.GetByID(c.Request.Context(), userID, recordID)
	if err != nil {
		mapOilChangeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateOilChange handles PUT /oil-changes/:recordId
func (h *OilChangeHandler) UpdateOilChange(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Record ID is required"})
		return
	}

	var req models.OilChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	record, err := h.oilChangeService.Update(c.Request.Context(), userID, recordID, req)
	if err != nil {
		mapOilChangeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteOilChange handles DELETE /oil-changes/:recordId
func (h *OilChangeHandler) DeleteOilChange(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Record ID is required"})
		return
	}

	if err := h.oilChangeService.Delete(c.Request.Context(), userID, recordID); err != nil {
		mapOilChangeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Oil-change record deleted"})
}

// DownloadTicket handles GET /oil-changes/:recordId/pdf. Streams the rendered
// ticket as an attachment.
func (h *OilChangeHandler) DownloadTicket(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Record ID is required"})
		return
	}

	data, fileName, err := h.oilChangeService.BuildTicket(c.Request.Context(), userID, recordID)
	if err != nil {
		mapOilChangeErrorToStatus(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", data)
}

// WhatsAppShare handles GET /oil-changes/:recordId/share/whatsapp
func (h *OilChangeHandler) WhatsAppShare(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Record ID is required"})
		return
	}

	link, err := h.oilChangeService.WhatsAppShareLink(c.Request.Context(), userID, recordID)
	if err != nil {
		mapOilChangeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, ShareLinkResponse{URL: link})
}

// EmailShare handles GET /oil-changes/:recordId/share/email?to=addr
func (h *OilChangeHandler) EmailShare(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recordID := c.Param("recordId")
	if recordID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Record ID is required"})
		return
	}

	link, err := h.oilChangeService.EmailShareLink(c.Request.Context(), userID, recordID, c.Query("to"))
	if err != nil {
		mapOilChangeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, ShareLinkResponse{URL: link})
}
