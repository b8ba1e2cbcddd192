package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyBalance holds the consolidated totals for one calendar day.
// It is always produced whole by the calculator and fully overwritten on
// recomputation, never mutated in place.
type DailyBalance struct {
	Date           Day             `json:"date"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	EntryCount     int             `json:"entry_count"`
	ComputedAt     time.Time       `json:"computed_at"`
}

// CheckInvariant verifies closing = opening + credits - debits.
func (b *DailyBalance) CheckInvariant() error {
	want := b.OpeningBalance.Add(b.TotalCredits).Sub(b.TotalDebits)
	if !b.ClosingBalance.Equal(want) {
		return &ConsolidationError{
			Date: b.Date,
			Msg:  "closing balance does not equal opening + credits - debits",
		}
	}
	return nil
}

// EqualValues reports whether two balances carry the same consolidated
// values, ignoring ComputedAt. Used to verify recomputation idempotence.
func (b *DailyBalance) EqualValues(other *DailyBalance) bool {
	if other == nil {
		return false
	}
	return b.Date.Equal(other.Date) &&
		b.OpeningBalance.Equal(other.OpeningBalance) &&
		b.TotalCredits.Equal(other.TotalCredits) &&
		b.TotalDebits.Equal(other.TotalDebits) &&
		b.ClosingBalance.Equal(other.ClosingBalance) &&
		b.EntryCount == other.EntryCount
}
