package respond

import (
	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/telemetry"
)

// Error sends a failure envelope and aborts the handler chain.
func Error(c *gin.Context, status int, code, message string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   message,
		Code:    code,
	})
}
