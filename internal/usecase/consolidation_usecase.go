package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/infrastructure/metrics"
)

// ConsolidationUseCase orchestrates daily balance consolidation: read-through
// lookups, forced recomputation from raw entries, and the forward cascade
// that repairs downstream days after a backdated entry.
//
// It holds no mutable accumulator state; every (re)computation starts from
// the raw entries, so redelivered triggers are safe.
type ConsolidationUseCase struct {
	entryRepo   EntryRepository
	balanceRepo BalanceRepository
	cache       Cache // nil disables caching entirely
	logger      zerolog.Logger
	metrics     *metrics.Metrics

	environment        string
	balanceTTL         time.Duration
	cascadeDays        int
	propagateEmptyDays bool
}

// ConsolidationConfig configures a ConsolidationUseCase.
type ConsolidationConfig struct {
	EntryRepo   EntryRepository
	BalanceRepo BalanceRepository
	Cache       Cache
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics

	Environment string
	BalanceTTL  time.Duration
	CascadeDays int

	// PropagateEmptyDays switches the cascade from the historical
	// gap-termination behavior (stop at the first day with no active
	// entries) to a corrected variant that writes the empty day's balance
	// and keeps going. The historical behavior never repairs an empty
	// day's opening balance; see RecalculateCascade.
	PropagateEmptyDays bool
}

// NewConsolidationUseCase creates a new ConsolidationUseCase.
func NewConsolidationUseCase(cfg ConsolidationConfig) *ConsolidationUseCase {
	if cfg.BalanceTTL == 0 {
		cfg.BalanceTTL = DefaultBalanceTTL
	}
	if cfg.CascadeDays == 0 {
		cfg.CascadeDays = DefaultCascadeDays
	}

	return &ConsolidationUseCase{
		entryRepo:          cfg.EntryRepo,
		balanceRepo:        cfg.BalanceRepo,
		cache:              cfg.Cache,
		logger:             cfg.Logger,
		metrics:            cfg.Metrics,
		environment:        cfg.Environment,
		balanceTTL:         cfg.BalanceTTL,
		cascadeDays:        cfg.CascadeDays,
		propagateEmptyDays: cfg.PropagateEmptyDays,
	}
}

// GetDailyBalance returns the consolidated balance for day, reading
// through cache and store and computing-and-persisting on first access.
// A date with no ledger history returns a zero-valued balance, not an
// error.
func (uc *ConsolidationUseCase) GetDailyBalance(ctx context.Context, day domain.Day) (*domain.DailyBalance, error) {
	if balance := uc.lookupBalance(ctx, day); balance != nil {
		return balance, nil
	}

	if uc.metrics != nil {
		uc.metrics.ConsolidationsTotal.WithLabelValues("read").Inc()
	}

	return uc.computeAndPersist(ctx, day)
}

// ConsolidateDay recomputes day's balance from raw entries, bypassing any
// cached or stored value, and persists the result.
func (uc *ConsolidationUseCase) ConsolidateDay(ctx context.Context, day domain.Day) (*domain.DailyBalance, error) {
	return uc.computeAndPersist(ctx, day)
}

// OnEntryCreated handles an "entry created for day" notification: it
// recomputes the day, drops every cache key the change can touch, then
// cascades recomputation forward. At-least-once redelivery is safe because
// each run recomputes from the same raw entries.
func (uc *ConsolidationUseCase) OnEntryCreated(ctx context.Context, day domain.Day) (*domain.DailyBalance, error) {
	// Stale keys for any environment go first so the write-through value
	// below survives.
	uc.invalidatePattern(ctx, balanceKeyPattern(day), "balance")
	uc.invalidatePattern(ctx, reportKeyPatternAll, "report")

	if uc.metrics != nil {
		uc.metrics.ConsolidationsTotal.WithLabelValues("entry").Inc()
	}

	balance, err := uc.ConsolidateDay(ctx, day)
	if err != nil {
		return nil, err
	}

	touched, err := uc.RecalculateCascade(ctx, day, uc.cascadeDays)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CascadeDays.Observe(float64(touched))
	}

	uc.logger.Info().
		Str("date", day.String()).
		Int("cascade_days", touched).
		Msg("consolidation updated")

	return balance, nil
}

// RecalculateCascade recomputes the days after start, strictly in
// chronological order: each day's opening balance depends on the freshly
// recomputed closing balance of the day before it, so the steps cannot run
// in parallel.
//
// In the historical mode the cascade stops silently at the first day with
// zero active entries, even though such a day still has a real closing
// balance equal to its opening. With PropagateEmptyDays set, the empty day
// is recomputed (opening == closing) and the cascade continues.
//
// Any data access failure aborts the cascade at that day; days already
// recomputed stay persisted and valid, and the error propagates to the
// trigger so the notification can be retried whole. It returns how many
// days were recomputed.
func (uc *ConsolidationUseCase) RecalculateCascade(ctx context.Context, start domain.Day, maxDays int) (int, error) {
	touched := 0

	for i := 1; i <= maxDays; i++ {
		day := start.AddDays(i)

		hasEntries, err := uc.entryRepo.HasActiveEntriesOn(ctx, day)
		if err != nil {
			if uc.metrics != nil {
				uc.metrics.CascadeAborts.Inc()
			}
			return touched, err
		}

		if !hasEntries && !uc.propagateEmptyDays {
			uc.logger.Debug().
				Str("date", day.String()).
				Int("days_touched", touched).
				Msg("cascade stopped at day without entries")
			return touched, nil
		}

		uc.invalidatePattern(ctx, balanceKeyPattern(day), "balance")

		if _, err := uc.computeAndPersist(ctx, day); err != nil {
			if uc.metrics != nil {
				uc.metrics.CascadeAborts.Inc()
			}
			return touched, err
		}
		touched++
	}

	return touched, nil
}

// computeAndPersist recalculates day from raw entries and overwrites the
// stored balance.
func (uc *ConsolidationUseCase) computeAndPersist(ctx context.Context, day domain.Day) (*domain.DailyBalance, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultStoreTimeout)
	defer cancel()

	opening, err := uc.openingBalance(ctx, day)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.GetByDateRange(ctx, day.StartOfDay(), day.EndOfDay())
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.Status != domain.EntryStatusActive {
			return nil, &domain.ConsolidationError{
				Date: day,
				Msg:  "entry source returned a non-ACTIVE entry " + entry.ID,
			}
		}
	}

	balance := ComputeDailyBalance(day, entries, opening)
	if err := balance.CheckInvariant(); err != nil {
		return nil, err
	}

	if err := uc.balanceRepo.Put(ctx, balance); err != nil {
		return nil, err
	}

	uc.logger.Debug().
		Str("date", day.String()).
		Str("closing", balance.ClosingBalance.String()).
		Int("entries", balance.EntryCount).
		Msg("daily balance persisted")

	uc.cacheBalance(ctx, balance)

	return balance, nil
}

// openingBalance resolves the prior day's closing balance. A day with no
// stored prior balance opens at zero: absence of history is treated as a
// zero opening balance, which is only correct when the day truly precedes
// all ledger activity.
func (uc *ConsolidationUseCase) openingBalance(ctx context.Context, day domain.Day) (decimal.Decimal, error) {
	prev := day.Prev()

	if balance := uc.cachedBalance(ctx, prev); balance != nil {
		return balance.ClosingBalance, nil
	}

	balance, err := uc.balanceRepo.Get(ctx, prev)
	if err != nil {
		if errors.Is(err, domain.ErrBalanceNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return balance.ClosingBalance, nil
}

// lookupBalance reads through cache then store without computing.
func (uc *ConsolidationUseCase) lookupBalance(ctx context.Context, day domain.Day) *domain.DailyBalance {
	if balance := uc.cachedBalance(ctx, day); balance != nil {
		return balance
	}

	balance, err := uc.balanceRepo.Get(ctx, day)
	if err != nil {
		if !errors.Is(err, domain.ErrBalanceNotFound) {
			uc.logger.Warn().Err(err).Str("date", day.String()).Msg("balance store read failed, recomputing")
		}
		return nil
	}

	uc.cacheBalance(ctx, balance)

	return balance
}

// cachedBalance reads a balance from the cache. Unavailability and corrupt
// payloads both degrade to a miss; a corrupt key is deleted so the next
// read repopulates it.
func (uc *ConsolidationUseCase) cachedBalance(ctx context.Context, day domain.Day) *domain.DailyBalance {
	if uc.cache == nil {
		return nil
	}

	key := balanceKey(day, uc.environment)

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		}
		if uc.metrics != nil {
			uc.metrics.CacheMisses.WithLabelValues("balance").Inc()
		}
		return nil
	}

	var balance domain.DailyBalance
	if err := json.Unmarshal(data, &balance); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("corrupt cached balance, invalidating")
		uc.deleteKey(ctx, key)
		return nil
	}

	if err := balance.CheckInvariant(); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("cached balance failed invariant, invalidating")
		uc.deleteKey(ctx, key)
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.CacheHits.WithLabelValues("balance").Inc()
	}

	return &balance
}

func (uc *ConsolidationUseCase) cacheBalance(ctx context.Context, balance *domain.DailyBalance) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(balance)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to encode balance for cache")
		return
	}

	key := balanceKey(balance.Date, uc.environment)
	if err := uc.cache.Set(ctx, key, data, uc.balanceTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (uc *ConsolidationUseCase) deleteKey(ctx context.Context, key string) {
	if err := uc.cache.Delete(ctx, key); err != nil && !errors.Is(err, ErrCacheMiss) {
		uc.logger.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

func (uc *ConsolidationUseCase) invalidatePattern(ctx context.Context, pattern, kind string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.DeleteMatching(ctx, pattern); err != nil {
		uc.logger.Warn().Err(err).Str("pattern", pattern).Msg("cache invalidation failed")
		return
	}

	if uc.metrics != nil {
		uc.metrics.CacheInvalidations.WithLabelValues(kind).Inc()
	}
}
