package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
)

// CreateEntryRequest represents an entry creation request.
type CreateEntryRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Date        string          `json:"date"`
}

// ToInput converts the request to usecase input. The date accepts either a
// plain day or an RFC3339 timestamp.
func (r *CreateEntryRequest) ToInput() (usecase.CreateEntryInput, error) {
	var date time.Time
	if day, err := domain.ParseDay(r.Date); err == nil {
		date = day.StartOfDay()
	} else {
		parsed, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return usecase.CreateEntryInput{}, domain.ErrInvalidDate
		}
		date = parsed
	}

	return usecase.CreateEntryInput{
		Type:        domain.EntryType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		Category:    r.Category,
		Date:        date,
	}, nil
}
