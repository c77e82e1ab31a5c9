package response

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request-id middleware fills.
const RequestIDKey = "RequestID"

// Response is the envelope every endpoint returns. Failures carry only a
// message; detail stays in the server logs.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	id, _ := c.Get(RequestIDKey)
	s, _ := id.(string)
	return s
}

func Success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		RequestID: requestID(c),
	})
}
