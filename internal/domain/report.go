package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodReport aggregates daily balances over an inclusive date range.
// The report always covers every day in [Start, End], including days with
// no ledger activity.
type PeriodReport struct {
	Start          Day             `json:"period_start"`
	End            Day             `json:"period_end"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	DayCount       int             `json:"day_count"`
	DailyBalances  []*DailyBalance `json:"daily_balances"`
}

// BalanceVariation returns closing minus opening for the period.
func (r *PeriodReport) BalanceVariation() decimal.Decimal {
	return r.ClosingBalance.Sub(r.OpeningBalance)
}

// AverageDailyCredits returns total credits divided by day count, or zero
// for an empty report.
func (r *PeriodReport) AverageDailyCredits() decimal.Decimal {
	if r.DayCount == 0 {
		return decimal.Zero
	}
	return r.TotalCredits.Div(decimal.NewFromInt(int64(r.DayCount)))
}

// AverageDailyDebits returns total debits divided by day count, or zero
// for an empty report.
func (r *PeriodReport) AverageDailyDebits() decimal.Decimal {
	if r.DayCount == 0 {
		return decimal.Zero
	}
	return r.TotalDebits.Div(decimal.NewFromInt(int64(r.DayCount)))
}
