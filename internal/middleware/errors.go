// Package middleware holds the gin middleware shared by every route:
// error shaping, panic recovery, request ids, access logging and CORS.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emilythestrangee/quora-clone/backend/internal/apperror"
)

// ErrorHandler turns the last error a handler attached with c.Error into a
// {"message": ...} response. When logCauses is set, the cause of internal
// errors is logged.
func ErrorHandler(log *zap.Logger, logCauses bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := apperror.From(c.Errors.Last().Err)
		if appErr.Kind == apperror.KindInternal && logCauses {
			log.Error("request failed",
				zap.Error(appErr),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(RequestIDKey)),
			)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.Status(), gin.H{"message": appErr.Message})
	}
}

// NotFound answers routes nothing else matched.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not found."})
}
