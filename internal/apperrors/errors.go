package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the actor lacks the capability for the operation.
var ErrUnauthorized = errors.New("operation not authorized")

// ErrPeriodClosed indicates the transaction date falls inside a closed accounting period.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrImmutableTransaction indicates an edit or delete was attempted on a
// transaction that is no longer pending.
var ErrImmutableTransaction = errors.New("transaction is no longer pending and cannot be modified")

// ErrAlreadyProcessed indicates an approval or rejection was attempted on a
// transaction that already left the pending state.
var ErrAlreadyProcessed = errors.New("transaction already processed")

// ErrPartialApprovalConflict indicates the legs of a branch transfer were
// found in inconsistent states during approval. Never resolved silently;
// it points at a prior bug or race.
var ErrPartialApprovalConflict = errors.New("branch transfer legs are in inconsistent states")

// ErrReferenceGeneration indicates the reference generator exhausted its
// retry budget without producing a unique reference.
var ErrReferenceGeneration = errors.New("reference generation failed")

// ErrOpeningBalanceLocked indicates an opening balance edit was attempted
// after non-opening transactions exist for the branch/currency pair.
var ErrOpeningBalanceLocked = errors.New("opening balance is locked because transactions already exist")

// AppError wraps infrastructure failures with a status code and a
// caller-displayable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
