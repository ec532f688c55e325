package ledger

import (
	"errors"
	"fmt"
)

// Error is returned by ledger mutations that were rejected.
// A rejected mutation never changes the log.
type Error struct {
	Code    ErrorCode
	Message string

	// DeliveryID is the id the caller referenced, if any.
	DeliveryID string
}

// ErrorCode categorizes ledger errors.
type ErrorCode string

const (
	// ErrCodeLocked indicates the ledger was locked by finalization.
	ErrCodeLocked ErrorCode = "LOCKED"

	// ErrCodeNotFound indicates no delivery has the referenced id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

func (e *Error) Error() string {
	if e.DeliveryID != "" {
		return fmt.Sprintf("%s: %s (delivery=%s)", e.Code, e.Message, e.DeliveryID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLocked returns true if err is a locked-ledger error.
// Uses errors.As to handle wrapped errors.
func IsLocked(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == ErrCodeLocked
	}
	return false
}

// IsNotFound returns true if err references an unknown delivery.
func IsNotFound(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == ErrCodeNotFound
	}
	return false
}

func lockedError(op string) error {
	return &Error{Code: ErrCodeLocked, Message: op + " rejected: innings is complete"}
}

func notFoundError(op, id string) error {
	return &Error{Code: ErrCodeNotFound, Message: op + ": no such delivery", DeliveryID: id}
}
