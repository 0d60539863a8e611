package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moodloop/backend/internal/apierror"
	"github.com/moodloop/backend/internal/middleware"
	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/internal/service"
)

type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new mood entry handler
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// CreateEntry handles POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.CreateMoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
		return
	}

	var fieldErrors []apierror.FieldError
	if !models.MoodValue(req.MoodValue).Valid() {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "mood_value",
			Message: "must be one of: struggling, challenged, okay, good, great",
			Code:    "invalid_value",
		})
	}
	if _, err := time.Parse(time.RFC3339Nano, req.Timestamp); err != nil {
		// Clients without timezone info send local wall-clock time
		if _, err := time.ParseInLocation("2006-01-02T15:04:05", req.Timestamp, time.Local); err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{
				Field:   "timestamp",
				Message: "must be an ISO 8601 timestamp",
				Code:    "invalid_format",
			})
		}
	}
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), deviceID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntries handles GET /api/v1/entries
func (h *EntryHandler) GetEntries(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	entries, err := h.entryService.GetEntries(c.Request.Context(), deviceID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	if entries == nil {
		entries = []models.MoodEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	entryID := c.Param("id")
	if err := h.entryService.DeleteEntry(c.Request.Context(), deviceID, entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrEntryNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Entry", entryID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
