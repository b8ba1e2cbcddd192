package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/domain"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

// Get retrieves the persisted balance for a day. Returns
// domain.ErrBalanceNotFound when no balance has been consolidated yet.
func (r *BalanceRepository) Get(ctx context.Context, day domain.Day) (*domain.DailyBalance, error) {
	const query = `
		SELECT balance_date::text, opening_balance::text, total_credits::text, total_debits::text,
		       closing_balance::text, entry_count, computed_at
		FROM daily_balances
		WHERE balance_date = $1`

	var (
		balance  domain.DailyBalance
		date     string
		opening  string
		credits  string
		debits   string
		closing  string
	)
	err := r.pool.QueryRow(ctx, query, day.String()).Scan(
		&date,
		&opening,
		&credits,
		&debits,
		&closing,
		&balance.EntryCount,
		&balance.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}
		return nil, domain.NewDataAccessError("query daily balance", err)
	}

	balance.Date, err = domain.ParseDay(date)
	if err != nil {
		return nil, domain.NewDataAccessError("parse balance date", err)
	}
	if balance.OpeningBalance, err = decimal.NewFromString(opening); err != nil {
		return nil, domain.NewDataAccessError("parse opening balance", err)
	}
	if balance.TotalCredits, err = decimal.NewFromString(credits); err != nil {
		return nil, domain.NewDataAccessError("parse total credits", err)
	}
	if balance.TotalDebits, err = decimal.NewFromString(debits); err != nil {
		return nil, domain.NewDataAccessError("parse total debits", err)
	}
	if balance.ClosingBalance, err = decimal.NewFromString(closing); err != nil {
		return nil, domain.NewDataAccessError("parse closing balance", err)
	}

	return &balance, nil
}

// Put upserts the balance for its day. The balance store holds exactly one
// row per day; recomputation overwrites.
func (r *BalanceRepository) Put(ctx context.Context, balance *domain.DailyBalance) error {
	const query = `
		INSERT INTO daily_balances (balance_date, opening_balance, total_credits, total_debits,
		                            closing_balance, entry_count, computed_at)
		VALUES ($1, $2::numeric, $3::numeric, $4::numeric, $5::numeric, $6, $7)
		ON CONFLICT (balance_date) DO UPDATE SET
			opening_balance = EXCLUDED.opening_balance,
			total_credits   = EXCLUDED.total_credits,
			total_debits    = EXCLUDED.total_debits,
			closing_balance = EXCLUDED.closing_balance,
			entry_count     = EXCLUDED.entry_count,
			computed_at     = EXCLUDED.computed_at`

	_, err := r.pool.Exec(ctx, query,
		balance.Date.String(),
		balance.OpeningBalance.String(),
		balance.TotalCredits.String(),
		balance.TotalDebits.String(),
		balance.ClosingBalance.String(),
		balance.EntryCount,
		balance.ComputedAt,
	)
	if err != nil {
		return domain.NewDataAccessError("upsert daily balance", err)
	}

	return nil
}
