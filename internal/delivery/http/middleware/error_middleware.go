package middleware

import (
	"errors"
	"net/http"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorHandler converts errors appended to the context into the JSON
// envelope. Anything that is not an AppError is treated as an infrastructure
// failure: logged with full detail server-side, reported generically.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed", "path", c.Request.URL.Path, "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.Error("unhandled error", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

// RequestID tags every request with an id echoed in the response envelope.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
