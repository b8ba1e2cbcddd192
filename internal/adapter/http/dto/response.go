package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/domain"
)

// BalanceResponse represents a daily balance in API responses.
type BalanceResponse struct {
	Date           string          `json:"date"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	EntryCount     int             `json:"entry_count"`
	ComputedAt     time.Time       `json:"computed_at"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.DailyBalance) *BalanceResponse {
	return &BalanceResponse{
		Date:           b.Date.String(),
		OpeningBalance: b.OpeningBalance,
		TotalCredits:   b.TotalCredits,
		TotalDebits:    b.TotalDebits,
		ClosingBalance: b.ClosingBalance,
		EntryCount:     b.EntryCount,
		ComputedAt:     b.ComputedAt,
	}
}

// BalancesFromDomain converts domain balances to responses.
func BalancesFromDomain(balances []*domain.DailyBalance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}
	return result
}

// ReportResponse represents a period report in API responses.
type ReportResponse struct {
	PeriodStart      string          `json:"period_start"`
	PeriodEnd        string          `json:"period_end"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
	BalanceVariation decimal.Decimal `json:"balance_variation"`
	TotalCredits     decimal.Decimal `json:"total_credits"`
	TotalDebits      decimal.Decimal `json:"total_debits"`
	AverageCredits   decimal.Decimal `json:"average_daily_credits"`
	AverageDebits    decimal.Decimal `json:"average_daily_debits"`
	DayCount         int             `json:"day_count"`

	DailyBalances []*BalanceResponse `json:"daily_balances,omitempty"`
	SnapshotID    string             `json:"snapshot_id,omitempty"`
}

// ReportFromDomain converts a domain report to a response. Daily balances
// are included only when includeDays is set.
func ReportFromDomain(r *domain.PeriodReport, includeDays bool) *ReportResponse {
	resp := &ReportResponse{
		PeriodStart:      r.Start.String(),
		PeriodEnd:        r.End.String(),
		OpeningBalance:   r.OpeningBalance,
		ClosingBalance:   r.ClosingBalance,
		BalanceVariation: r.BalanceVariation(),
		TotalCredits:     r.TotalCredits,
		TotalDebits:      r.TotalDebits,
		AverageCredits:   r.AverageDailyCredits(),
		AverageDebits:    r.AverageDailyDebits(),
		DayCount:         r.DayCount,
	}
	if includeDays {
		resp.DailyBalances = BalancesFromDomain(r.DailyBalances)
	}
	return resp
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Type:        string(e.Type),
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
