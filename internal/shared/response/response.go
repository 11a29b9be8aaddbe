package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the body shape of every response: clients branch on StatusCode,
// Message is human readable English.
type Envelope struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Message:    message,
		StatusCode: status,
		Data:       data,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Message:    message,
		StatusCode: status,
	})
}

// Abort writes an error envelope and stops the middleware chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Message:    message,
		StatusCode: status,
	})
}
