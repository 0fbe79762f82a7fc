// Package errors provides the standardized error taxonomy for the
// matching service and its HTTP surface.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeJobNotFound     ErrorCode = "JOB_NOT_FOUND"
	ErrCodeNoRolesProvided ErrorCode = "NO_ROLES_PROVIDED"
	ErrCodeInvalidWeights  ErrorCode = "INVALID_WEIGHTS"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeTaskCreateFailed         ErrorCode = "TASK_CREATE_FAILED"
	ErrCodeReservationFailed        ErrorCode = "RESERVATION_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewJobNotFoundError creates a non-retryable lookup error. The message
// is part of the API contract and surfaced verbatim to clients.
func NewJobNotFoundError(jobID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobNotFound,
		Message:   "Job not found",
		Details:   fmt.Sprintf("jobId: %s", jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoRolesProvidedError creates a non-retryable input error for an
// optimize call with an empty roles list.
func NewNoRolesProvidedError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoRolesProvided,
		Message:   "No roles provided",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidWeightsError creates a non-retryable input error for a bad
// weight override vector.
func NewInvalidWeightsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidWeights,
		Message:   "Invalid weight vector",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request parsing error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request body",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTaskCreateFailedError creates a retryable task persistence error.
func NewTaskCreateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTaskCreateFailed,
		Message:   "Task creation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReservationFailedError creates a retryable reservation-store error.
func NewReservationFailedError(workerID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReservationFailed,
		Message:   "Worker reservation failed",
		Details:   fmt.Sprintf("workerId: %s, error: %s", workerID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable delivery error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the HTTP status the API surface
// should respond with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeJobNotFound:
		return http.StatusNotFound
	case ErrCodeNoRolesProvided, ErrCodeInvalidWeights, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed,
		ErrCodeTaskCreateFailed, ErrCodeReservationFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
