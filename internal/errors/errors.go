package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Domain sentinel errors for the analysis pipeline. Call sites wrap these
// with fmt.Errorf("...: %w", err) to add operation context.
var (
	ErrSourceNotFound   = errors.New("source file not found")
	ErrMissingColumn    = errors.New("expected column missing")
	ErrEmptyDataset     = errors.New("dataset is empty")
	ErrNoMatchingRows   = errors.New("join produced no rows")
	ErrInsufficientData = errors.New("insufficient rows for modeling")
	ErrSingularMatrix   = errors.New("design matrix is singular")
)

// APIError represents a structured API error response for the report server.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common server scenarios
var (
	ErrInvalidRequest    = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
)

// NotFoundWithResource creates a not found error naming the missing resource
func NotFoundWithResource(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found", resource), resource)
}

// InternalServerWithError creates an internal server error with details
func InternalServerWithError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Internal server error", err.Error())
}
