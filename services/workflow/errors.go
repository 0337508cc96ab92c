package workflow

import (
	"errors"
	"fmt"
)

// Error codes for the engine's failure taxonomy. Anything raised before the
// transaction commits leaves the workflow untouched.
const (
	CodeValidation        = "validationError"
	CodeNotFound          = "notFound"
	CodeAccessDenied      = "accessDenied"
	CodeConflict          = "conflict"
	CodeInvalidTransition = "invalidStateTransition"
	CodePaymentGateway    = "paymentGatewayError"
	CodePersistence       = "persistenceError"
)

// Error is a coded engine error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(format string, args ...interface{}) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewAccessDeniedError(format string, args ...interface{}) error {
	return &Error{Code: CodeAccessDenied, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidTransitionError(format string, args ...interface{}) error {
	return &Error{Code: CodeInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func NewPaymentGatewayError(format string, args ...interface{}) error {
	return &Error{Code: CodePaymentGateway, Message: fmt.Sprintf(format, args...)}
}

func NewPersistenceError(format string, args ...interface{}) error {
	return &Error{Code: CodePersistence, Message: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the engine error code, or "" for foreign errors.
func ErrCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalidTransition reports whether err is a stale-precondition failure.
// Callback handlers swallow these as benign duplicates.
func IsInvalidTransition(err error) bool {
	return ErrCode(err) == CodeInvalidTransition
}
