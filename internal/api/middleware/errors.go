// internal/api/middleware/errors.go
package middleware

import (
	"log/slog"
	"net/http"

	"animal-finder-api-server/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Handlers that fail only call c.Error and return; nothing has been written yet.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		if appErr, ok := apperrors.From(err); ok {
			body := gin.H{"error": appErr.Message(), "code": appErr.ErrorCode()}
			if appErr.Details() != "" {
				body["details"] = appErr.Details()
			}
			if appErr.HTTPCode() >= http.StatusInternalServerError {
				logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
			}
			c.JSON(appErr.HTTPCode(), body)
			return
		}

		logger.Error("unhandled error", "path", c.Request.URL.Path, "method", c.Request.Method, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"code":    "INTERNAL_ERROR",
			"details": err.Error(),
		})
	}
}
