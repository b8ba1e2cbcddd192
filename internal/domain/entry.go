package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType discriminates credits from debits.
type EntryType string

const (
	EntryTypeCredit EntryType = "CREDIT"
	EntryTypeDebit  EntryType = "DEBIT"
)

// EntryStatus marks whether an entry participates in consolidation.
type EntryStatus string

const (
	EntryStatusActive   EntryStatus = "ACTIVE"
	EntryStatusInactive EntryStatus = "INACTIVE"
)

// LedgerEntry represents a single ledger entry (credit or debit).
// Consolidation only ever reads ACTIVE entries.
type LedgerEntry struct {
	ID          string
	Type        EntryType
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time
	Status      EntryStatus
	CreatedAt   time.Time
}

// IsCredit reports whether the entry adds to the balance.
func (e *LedgerEntry) IsCredit() bool {
	return e.Type == EntryTypeCredit
}

// IsDebit reports whether the entry subtracts from the balance.
func (e *LedgerEntry) IsDebit() bool {
	return e.Type == EntryTypeDebit
}

// Validate checks the entry's own fields before it is persisted.
func (e *LedgerEntry) Validate() error {
	if e.Type != EntryTypeCredit && e.Type != EntryTypeDebit {
		return ErrInvalidEntryType
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
