package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/shared/server/respond"
	"jobtracker-backend/internal/shared/telemetry"
)

// Recovery turns handler panics into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
					"path":       c.FullPath(),
					"method":     c.Request.Method,
				}
				if userID := UserIDFromContext(c); userID != "" {
					fields["user_id"] = userID
				}
				telemetry.Error("http.panic", fields)
				respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error")
			}
		}()
		c.Next()
	}
}
