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

// BalanceProvider is the slice of the consolidation coordinator the report
// generator depends on.
type BalanceProvider interface {
	GetDailyBalance(ctx context.Context, day domain.Day) (*domain.DailyBalance, error)
}

// ReportUseCase builds period reports by walking a date range through the
// consolidation coordinator and aggregating the daily totals.
type ReportUseCase struct {
	balances  BalanceProvider
	cache     Cache              // nil disables caching
	snapshots SnapshotRepository // nil disables archiving
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	environment string
	reportTTL   time.Duration
}

// ReportConfig configures a ReportUseCase.
type ReportConfig struct {
	Balances  BalanceProvider
	Cache     Cache
	Snapshots SnapshotRepository
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics

	Environment string
	ReportTTL   time.Duration
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(cfg ReportConfig) *ReportUseCase {
	if cfg.ReportTTL == 0 {
		cfg.ReportTTL = DefaultReportTTL
	}

	return &ReportUseCase{
		balances:    cfg.Balances,
		cache:       cfg.Cache,
		snapshots:   cfg.Snapshots,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		environment: cfg.Environment,
		reportTTL:   cfg.ReportTTL,
	}
}

// BuildReport assembles the period report for [start, end] inclusive.
// Every day in the range appears in the report, including days with no
// ledger activity, whose opening equals their closing. Per-day reads go
// through the coordinator's read-through path, never forced recomputation.
func (uc *ReportUseCase) BuildReport(ctx context.Context, start, end domain.Day) (*domain.PeriodReport, error) {
	if start.After(end) {
		return nil, domain.ErrInvalidPeriod
	}

	if report := uc.cachedReport(ctx, start, end); report != nil {
		return report, nil
	}

	dayCount := start.DaysUntil(end) + 1
	daily := make([]*domain.DailyBalance, 0, dayCount)

	openingBalance := decimal.Zero
	closingBalance := decimal.Zero
	totalCredits := decimal.Zero
	totalDebits := decimal.Zero

	for day := start; !day.After(end); day = day.Next() {
		balance, err := uc.balances.GetDailyBalance(ctx, day)
		if err != nil {
			return nil, err
		}

		if day.Equal(start) {
			openingBalance = balance.OpeningBalance
		}
		closingBalance = balance.ClosingBalance
		totalCredits = totalCredits.Add(balance.TotalCredits)
		totalDebits = totalDebits.Add(balance.TotalDebits)

		daily = append(daily, balance)
	}

	report := &domain.PeriodReport{
		Start:          start,
		End:            end,
		OpeningBalance: openingBalance,
		ClosingBalance: closingBalance,
		TotalCredits:   totalCredits,
		TotalDebits:    totalDebits,
		DayCount:       len(daily),
		DailyBalances:  daily,
	}

	uc.cacheReport(ctx, report)

	if uc.metrics != nil {
		uc.metrics.ReportsBuilt.Inc()
	}

	return report, nil
}

// ArchiveReport stores a whole report snapshot and returns its location.
func (uc *ReportUseCase) ArchiveReport(ctx context.Context, report *domain.PeriodReport) (string, error) {
	if uc.snapshots == nil {
		return "", errors.New("report archiving is not configured")
	}

	id, err := uc.snapshots.Save(ctx, report)
	if err != nil {
		return "", err
	}

	if uc.metrics != nil {
		uc.metrics.ReportsArchived.Inc()
	}

	uc.logger.Info().
		Str("snapshot_id", id).
		Str("start", report.Start.String()).
		Str("end", report.End.String()).
		Msg("report snapshot archived")

	return id, nil
}

func (uc *ReportUseCase) cachedReport(ctx context.Context, start, end domain.Day) *domain.PeriodReport {
	if uc.cache == nil {
		return nil
	}

	key := reportKey(start, end, uc.environment)

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, rebuilding report")
		}
		if uc.metrics != nil {
			uc.metrics.CacheMisses.WithLabelValues("report").Inc()
		}
		return nil
	}

	var report domain.PeriodReport
	if err := json.Unmarshal(data, &report); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("corrupt cached report, invalidating")
		if err := uc.cache.Delete(ctx, key); err != nil && !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("cache delete failed")
		}
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.CacheHits.WithLabelValues("report").Inc()
	}

	return &report
}

func (uc *ReportUseCase) cacheReport(ctx context.Context, report *domain.PeriodReport) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to encode report for cache")
		return
	}

	key := reportKey(report.Start, report.End, uc.environment)
	if err := uc.cache.Set(ctx, key, data, uc.reportTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
