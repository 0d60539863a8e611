package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moodloop/backend/internal/apierror"
	"github.com/moodloop/backend/internal/middleware"
	"github.com/moodloop/backend/internal/models"
	"github.com/moodloop/backend/internal/service"
)

const dateQueryFormat = "2006-01-02"

type PartnerHandler struct {
	partnerService service.PartnerService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
	}
}

// GetPostcard handles GET /api/v1/partner/postcard?date=YYYY-MM-DD
// Defaults to today when no date is given.
func (h *PartnerHandler) GetPostcard(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateQueryFormat, raw, time.Local)
		if err != nil {
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "date", Message: "must be formatted as YYYY-MM-DD", Code: "invalid_format"},
			}))
			return
		}
		day = parsed
	}

	postcard, err := h.partnerService.Postcard(c.Request.Context(), deviceID, day)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}
	if postcard == nil {
		// Not enough entries that day to say anything meaningful
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Postcard", day.Format(dateQueryFormat)))
		return
	}

	c.JSON(http.StatusOK, postcard)
}

// GetDigest handles GET /api/v1/partner/digest
func (h *PartnerHandler) GetDigest(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	days, err := h.partnerService.Digest(c.Request.Context(), deviceID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	if days == nil {
		days = []models.DailyInsightsDay{}
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetSummary handles GET /api/v1/partner/summary?period=week|month
func (h *PartnerHandler) GetSummary(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	period := models.Period(c.DefaultQuery("period", string(models.PeriodWeek)))
	if period != models.PeriodWeek && period != models.PeriodMonth {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "period", Message: "must be one of: week, month", Code: "invalid_value"},
		}))
		return
	}

	summary, err := h.partnerService.Summary(c.Request.Context(), deviceID, period)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateContact handles PUT /api/v1/partner/contact
func (h *PartnerHandler) UpdateContact(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	var req models.UpdatePartnerContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error()))
		return
	}

	contact := &models.PartnerContact{Name: req.Name, Phone: req.Phone}
	if err := h.partnerService.SetContact(c.Request.Context(), deviceID, contact); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, contact)
}

// GetContact handles GET /api/v1/partner/contact
func (h *PartnerHandler) GetContact(c *gin.Context) {
	deviceID := middleware.GetDeviceID(c)
	if deviceID == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	contact, err := h.partnerService.GetContact(c.Request.Context(), deviceID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}
	if contact == nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Partner contact", deviceID))
		return
	}

	c.JSON(http.StatusOK, contact)
}
