package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code and, for
// printer failures, the OS error code.
type AppError struct {
	Code      int    `json:"-"`
	Message   string `json:"error"`
	ErrorCode *int   `json:"errorCode"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Ongeldig verzoek"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Interne fout"}
	ErrTooManyPrints  = &AppError{Code: http.StatusTooManyRequests, Message: "Te veel printverzoeken, probeer het zo opnieuw"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewPrintError creates a 500 error for a failed print attempt, carrying the
// OS error code when there is one.
func NewPrintError(message string, errorCode *int) *AppError {
	return &AppError{
		Code:      http.StatusInternalServerError,
		Message:   message,
		ErrorCode: errorCode,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
