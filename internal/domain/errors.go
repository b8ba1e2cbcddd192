package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors - rejected before any computation, never retried.
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidPeriod    = errors.New("period start must not be after period end")
	ErrInvalidEntryType = errors.New("entry type must be CREDIT or DEBIT")
	ErrInvalidAmount    = errors.New("amount must be positive")

	// ErrBalanceNotFound distinguishes "never computed" from a balance
	// computed to zero.
	ErrBalanceNotFound = errors.New("daily balance not found")

	ErrEntryNotFound = errors.New("ledger entry not found")
)

// DataAccessError wraps a failure of the entry source or the durable
// balance store. It aborts the current consolidation step and propagates
// to the caller; it is never retried internally.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError wraps err with the failing operation name.
func NewDataAccessError(op string, err error) *DataAccessError {
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccess reports whether err is (or wraps) a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// ConsolidationError signals an internal invariant violation during
// consolidation. It is fatal to the current operation and surfaced to the
// trigger like a data access failure so the notification is retried later.
type ConsolidationError struct {
	Date Day
	Msg  string
}

func (e *ConsolidationError) Error() string {
	return fmt.Sprintf("consolidation failed for %s: %s", e.Date, e.Msg)
}
