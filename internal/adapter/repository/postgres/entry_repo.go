package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create persists a new ledger entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	const query = `
		INSERT INTO ledger_entries (id, entry_type, amount, description, category, entry_date, status, created_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		string(entry.Type),
		entry.Amount.String(),
		entry.Description,
		entry.Category,
		entry.Date,
		string(entry.Status),
		entry.CreatedAt,
	)
	if err != nil {
		return domain.NewDataAccessError("insert entry", err)
	}

	return nil
}

// GetByDateRange retrieves ACTIVE entries whose date falls in [from, to],
// ordered by date.
func (r *EntryRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.LedgerEntry, error) {
	const query = `
		SELECT id, entry_type, amount::text, description, category, entry_date, status, created_at
		FROM ledger_entries
		WHERE entry_date BETWEEN $1 AND $2 AND status = 'ACTIVE'
		ORDER BY entry_date, created_at`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, domain.NewDataAccessError("query entries by date range", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// HasActiveEntriesOn reports whether any ACTIVE entry exists on the given day.
func (r *EntryRepository) HasActiveEntriesOn(ctx context.Context, day domain.Day) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE entry_date BETWEEN $1 AND $2 AND status = 'ACTIVE'
		)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, day.StartOfDay(), day.EndOfDay()).Scan(&exists)
	if err != nil {
		return false, domain.NewDataAccessError("check entries on day", err)
	}

	return exists, nil
}

// List retrieves entries matching the filter, newest first.
func (r *EntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.LedgerEntry, error) {
	const query = `
		SELECT id, entry_type, amount::text, description, category, entry_date, status, created_at
		FROM ledger_entries
		WHERE ($1::timestamptz IS NULL OR entry_date >= $1)
		  AND ($2::timestamptz IS NULL OR entry_date <= $2)
		  AND ($3::text = '' OR category = $3)
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`

	var from, to *time.Time
	if !filter.From.IsZero() {
		from = &filter.From
	}
	if !filter.To.IsZero() {
		to = &filter.To
	}

	rows, err := r.pool.Query(ctx, query, from, to, filter.Category, filter.Limit, filter.Offset)
	if err != nil {
		return nil, domain.NewDataAccessError("list entries", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		var (
			entry     domain.LedgerEntry
			entryType string
			amount    string
			status    string
		)
		if err := rows.Scan(
			&entry.ID,
			&entryType,
			&amount,
			&entry.Description,
			&entry.Category,
			&entry.Date,
			&status,
			&entry.CreatedAt,
		); err != nil {
			return nil, domain.NewDataAccessError("scan entry row", err)
		}

		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, domain.NewDataAccessError("parse entry amount", err)
		}

		entry.Type = domain.EntryType(entryType)
		entry.Amount = parsed
		entry.Status = domain.EntryStatus(status)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewDataAccessError("iterate entry rows", err)
	}

	return entries, nil
}
