package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid      ErrorCode = "invalid"
	ErrorForbidden    ErrorCode = "forbidden"
	ErrorNotFound     ErrorCode = "not_found"
	ErrorConflict     ErrorCode = "conflict"
	ErrorUnauthorized ErrorCode = "unauthorized"
	ErrorOutOfRange   ErrorCode = "out_of_range"
	ErrorConfig       ErrorCode = "config"
	ErrorBadGateway   ErrorCode = "bad_gateway"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error  { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

// NewOutOfRangeError marks a programming-error class failure (e.g. indexing the
// survey outside its bounds). It must fail loudly rather than degrade.
func NewOutOfRangeError(msg string) error {
	return &ServiceError{Code: ErrorOutOfRange, Message: msg}
}

// NewConfigError marks a deployment defect (missing credential). Not retried.
func NewConfigError(msg string) error { return &ServiceError{Code: ErrorConfig, Message: msg} }

// NewBadGatewayError marks an upstream generation failure.
func NewBadGatewayError(msg string) error { return &ServiceError{Code: ErrorBadGateway, Message: msg} }

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
