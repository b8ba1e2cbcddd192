package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/infrastructure/metrics"
)

// EntryUseCase handles the ledger entry write path.
type EntryUseCase struct {
	entryRepo EntryRepository
	idGen     IDGenerator
	publisher EventPublisher // nil disables event publishing
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository, idGen IDGenerator, publisher EventPublisher, logger zerolog.Logger, m *metrics.Metrics) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		idGen:     idGen,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
	}
}

// CreateEntryInput represents input for creating a ledger entry.
type CreateEntryInput struct {
	Type        domain.EntryType
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        time.Time
}

// CreateEntry validates and persists a new ACTIVE entry, then notifies the
// consolidation pipeline. Publish failures do not fail the write; the
// entry is durable and a later consolidation read self-heals the balance.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.LedgerEntry, error) {
	entry := &domain.LedgerEntry{
		ID:          uc.idGen.Generate(),
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		Category:    input.Category,
		Date:        input.Date.UTC(),
		Status:      domain.EntryStatusActive,
		CreatedAt:   time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(entry.Type)).Inc()
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishEntryCreated(ctx, entry); err != nil {
			uc.logger.Warn().Err(err).Str("entry_id", entry.ID).Msg("failed to publish entry created event")
		}
	}

	return entry, nil
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	From     time.Time
	To       time.Time
	Category string
	Limit    int
	Offset   int
}

// ListEntries lists entries with filtering and pagination.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	return uc.entryRepo.List(ctx, EntryFilter{
		From:     input.From,
		To:       input.To,
		Category: input.Category,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
}
