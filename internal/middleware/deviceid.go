package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/moodloop/backend/internal/apierror"
	"github.com/moodloop/backend/internal/logger"
)

// deviceIDPattern restricts device identifiers to a safe character set.
// Device IDs become part of storage keys, so anything outside this set
// is rejected up front.
var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// DeviceID requires an X-Device-ID header on every request and scopes
// all downstream storage access to that device. There are no user
// accounts; the device identifier is the unit of isolation.
func DeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		deviceID := c.GetHeader("X-Device-ID")
		if deviceID == "" {
			log.Debug("request rejected: missing device identifier")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
			c.Abort()
			return
		}

		if !deviceIDPattern.MatchString(deviceID) {
			log.Debug("request rejected: malformed device identifier")
			requestID := apierror.GetRequestID(c)
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, "X-Device-ID contains invalid characters"))
			c.Abort()
			return
		}

		c.Set("device_id", deviceID)

		// Add device ID to request context for logging
		ctx := logger.WithDeviceID(c.Request.Context(), deviceID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetDeviceID extracts the device ID set by the DeviceID middleware.
func GetDeviceID(c *gin.Context) string {
	if id, exists := c.Get("device_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
