package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope codes surfaced to clients.
const (
	codeNotFound           = "NOT_FOUND"
	codeUnauthorized       = "UNAUTHORIZED"
	codeValidation         = "VALIDATION_ERROR"
	codeTokenExpired       = "TOKEN_EXPIRED"
	codeInternal           = "INTERNAL_ERROR"
	codeExchangeFailed     = "EXCHANGE_FAILED"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
)

// apiError is the error half of the response envelope.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// envelope is the uniform wrapper every JSON endpoint returns.
type envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *apiError `json:"error,omitempty"`
	Timestamp int64     `json:"timestamp"`
	Status    int       `json:"status"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
		Status:    status,
	})
}

func respondError(c *gin.Context, status int, message, code string) {
	c.JSON(status, envelope{
		Success:   false,
		Error:     &apiError{Message: message, Code: code},
		Timestamp: time.Now().UnixMilli(),
		Status:    status,
	})
}
