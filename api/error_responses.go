package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the results API
type ErrorCode string

const (
	ErrorCodeResultsNotFound ErrorCode = "RESULTS_NOT_FOUND"
	ErrorCodeReportNotFound  ErrorCode = "REPORT_NOT_FOUND"
	ErrorCodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	c.JSON(statusCode, &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	})
}
