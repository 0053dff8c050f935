package response

import (
	"github.com/gin-gonic/gin"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Kind      string      `json:"kind,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Warnings  []string    `json:"warnings,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// SuccessWithWarnings is a success whose side effects partly failed (e.g. an
// undelivered invite email).
func SuccessWithWarnings(c *gin.Context, code int, message string, data interface{}, warnings []string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Warnings:  warnings,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

// ErrorKind sends an error response tagged with its classification.
func ErrorKind(c *gin.Context, code int, kind, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Kind:      kind,
		Error:     err,
		RequestID: requestID(c),
	})
}
