package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/domain"
)

// ComputeDailyBalance derives one day's consolidated balance from its
// entries and the prior day's closing balance. It is pure apart from the
// ComputedAt timestamp: recomputing with unchanged inputs yields a balance
// with identical values.
//
// Entries with an unknown type contribute to neither total but are still
// counted in EntryCount.
func ComputeDailyBalance(day domain.Day, entries []*domain.LedgerEntry, opening decimal.Decimal) *domain.DailyBalance {
	totalCredits := decimal.Zero
	totalDebits := decimal.Zero

	for _, entry := range entries {
		switch entry.Type {
		case domain.EntryTypeCredit:
			totalCredits = totalCredits.Add(entry.Amount)
		case domain.EntryTypeDebit:
			totalDebits = totalDebits.Add(entry.Amount)
		}
	}

	return &domain.DailyBalance{
		Date:           day,
		OpeningBalance: opening,
		TotalCredits:   totalCredits,
		TotalDebits:    totalDebits,
		ClosingBalance: opening.Add(totalCredits).Sub(totalDebits),
		EntryCount:     len(entries),
		ComputedAt:     time.Now().UTC(),
	}
}
