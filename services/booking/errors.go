package booking

import (
	"errors"
	"fmt"
)

// Engine error codes. Handlers map these to HTTP statuses; callers branch on
// the code, never on message text.
const (
	CodeValidation          = "VALIDATION"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidAffiliation  = "INVALID_AFFILIATION"
	CodeInvalidDate         = "INVALID_DATE"
	CodeSlotFull            = "SLOT_FULL"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

type EngineError struct {
	Code    string
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &EngineError{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &EngineError{Code: CodeNotFound, Message: msg}
}

func NewInvalidAffiliationError(msg string) error {
	return &EngineError{Code: CodeInvalidAffiliation, Message: msg}
}

func NewInvalidDateError(msg string) error {
	return &EngineError{Code: CodeInvalidDate, Message: msg}
}

func NewSlotFullError(msg string) error {
	return &EngineError{Code: CodeSlotFull, Message: msg}
}

func NewConflictError(msg string) error {
	return &EngineError{Code: CodeConcurrencyConflict, Message: msg}
}

// CodeOf extracts the engine error code, or empty for non-engine errors.
func CodeOf(err error) string {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
