package innings

import (
	"errors"
	"fmt"

	"github.com/roach88/crease/internal/ledger"
)

// Error represents a rejected engine operation. A rejected operation
// never changes match state.
type Error struct {
	Code    ErrorCode
	Message string
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeLocked indicates the innings was finalized.
	ErrCodeLocked ErrorCode = "LOCKED"

	// ErrCodeInvalidDelivery indicates a delivery that cannot be scored.
	ErrCodeInvalidDelivery ErrorCode = "INVALID_DELIVERY"

	// ErrCodeInvalidConfig indicates a setup that cannot start an innings.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLocked returns true if err rejects a mutation on a finalized innings,
// whether it came from the engine or its ledger.
func IsLocked(err error) bool {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeLocked
	}
	return ledger.IsLocked(err)
}

// IsNotFound returns true if err references an unknown delivery.
func IsNotFound(err error) bool {
	return ledger.IsNotFound(err)
}

// IsInvalid returns true if err rejects bad input (delivery or config).
func IsInvalid(err error) bool {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeInvalidDelivery || ie.Code == ErrCodeInvalidConfig
	}
	return false
}

func lockedError(op string) error {
	return &Error{Code: ErrCodeLocked, Message: op + " rejected: innings is complete"}
}
