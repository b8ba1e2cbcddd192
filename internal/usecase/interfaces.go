package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/gobalance/internal/domain"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// EntryFilter narrows entry listings. Zero time bounds mean unbounded.
type EntryFilter struct {
	From     time.Time
	To       time.Time
	Category string
	Limit    int
	Offset   int
}

// EntryRepository defines data access for ledger entries.
// GetByDateRange must return only ACTIVE entries; the contract is
// range-based so an indexed implementation can replace a scan without
// touching the consolidation core.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.LedgerEntry, error)
	HasActiveEntriesOn(ctx context.Context, day domain.Day) (bool, error)
	List(ctx context.Context, filter EntryFilter) ([]*domain.LedgerEntry, error)
}

// BalanceRepository defines durable storage of one DailyBalance per date.
// Get returns domain.ErrBalanceNotFound for a date that was never
// computed; Put is a full overwrite (idempotent upsert).
type BalanceRepository interface {
	Get(ctx context.Context, day domain.Day) (*domain.DailyBalance, error)
	Put(ctx context.Context, balance *domain.DailyBalance) error
}

// SnapshotRepository archives whole period reports.
type SnapshotRepository interface {
	Save(ctx context.Context, report *domain.PeriodReport) (string, error)
}

// Cache defines best-effort caching operations. Implementations return
// ErrCacheMiss for absent keys; every other error is treated by callers
// as a miss, never propagated.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMatching(ctx context.Context, pattern string) error
}

// EventPublisher publishes ledger events to downstream consumers.
type EventPublisher interface {
	PublishEntryCreated(ctx context.Context, entry *domain.LedgerEntry) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
