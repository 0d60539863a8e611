package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moodloop/backend/internal/apierror"
	"github.com/moodloop/backend/internal/middleware"
	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/internal/service"
)

type AdvisorHandler struct {
	advisorService service.AdvisorService
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(advisorService service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
	}
}

// GetItems handles GET /api/v1/advisor?period=day|week|month
func (h *AdvisorHandler) GetItems(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	period := models.Period(c.DefaultQuery("period", string(models.PeriodDay)))
	if !period.Valid() {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "period", Message: "must be one of: day, week, month", Code: "invalid_value"},
		}))
		return
	}

	resp, err := h.advisorService.GetItems(c.Request.Context(), deviceID, period)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordFeedback handles POST /api/v1/advisor/feedback
func (h *AdvisorHandler) RecordFeedback(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
		return
	}

	if err := h.advisorService.RecordFeedback(c.Request.Context(), deviceID, req.TemplateID, *req.Helpful); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
