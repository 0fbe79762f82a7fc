// internal/common/errors/handler.go
package errors

import "time"

// ErrorResponse is the JSON envelope returned by the HTTP surface for
// any failed request.
type ErrorResponse struct {
	Error *StandardError `json:"error"`
}

// Normalize ensures any error is represented as a StandardError so the
// HTTP layer can always map it to a status and envelope.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ToResponse normalizes an error and pairs it with its HTTP status.
func ToResponse(err error) (int, ErrorResponse) {
	stdErr := Normalize(err)
	return HTTPStatus(stdErr.Code), ErrorResponse{Error: stdErr}
}
