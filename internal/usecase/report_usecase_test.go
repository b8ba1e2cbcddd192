package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
	"github.com/iho/gobalance/internal/usecase/mocks"
)

func newReportFixture(t *testing.T) (*fixture, *usecase.ReportUseCase) {
	t.Helper()

	f := newFixture(t)
	reportUC := usecase.NewReportUseCase(usecase.ReportConfig{
		Balances:    f.uc,
		Cache:       f.cache,
		Logger:      zerolog.Nop(),
		Environment: "test",
	})
	return f, reportUC
}

func TestBuildReportAggregation(t *testing.T) {
	f, reportUC := newReportFixture(t)
	seedEntry(f, "2024-01-01", domain.EntryTypeCredit, "100")
	seedEntry(f, "2024-01-01", domain.EntryTypeDebit, "30")
	seedEntry(f, "2024-01-02", domain.EntryTypeCredit, "50")
	seedEntry(f, "2024-01-03", domain.EntryTypeDebit, "20")

	report, err := reportUC.BuildReport(context.Background(), mustDay(t, "2024-01-01"), mustDay(t, "2024-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.DayCount != 3 || len(report.DailyBalances) != 3 {
		t.Fatalf("expected 3 days, got count=%d len=%d", report.DayCount, len(report.DailyBalances))
	}
	if !report.OpeningBalance.IsZero() {
		t.Errorf("expected opening 0, got %s", report.OpeningBalance)
	}
	if !report.ClosingBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected closing 100, got %s", report.ClosingBalance)
	}
	if !report.TotalCredits.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected credits 150, got %s", report.TotalCredits)
	}
	if !report.TotalDebits.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected debits 50, got %s", report.TotalDebits)
	}

	// Totals match the sum over the included days.
	sumCredits := decimal.Zero
	for _, day := range report.DailyBalances {
		sumCredits = sumCredits.Add(day.TotalCredits)
	}
	if !report.TotalCredits.Equal(sumCredits) {
		t.Errorf("report credits %s != sum of day credits %s", report.TotalCredits, sumCredits)
	}

	// Closing matches the last day's closing.
	last := report.DailyBalances[len(report.DailyBalances)-1]
	if !report.ClosingBalance.Equal(last.ClosingBalance) {
		t.Errorf("report closing %s != last day closing %s", report.ClosingBalance, last.ClosingBalance)
	}
}

func TestBuildReportIncludesEmptyDays(t *testing.T) {
	f, reportUC := newReportFixture(t)
	seedEntry(f, "2024-01-01", domain.EntryTypeCredit, "100")
	seedEntry(f, "2024-01-02", domain.EntryTypeCredit, "50")
	// 2024-01-03 has no entries; the report still covers it.

	report, err := reportUC.BuildReport(context.Background(), mustDay(t, "2024-01-01"), mustDay(t, "2024-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.DayCount != 3 {
		t.Fatalf("expected full range of 3 days, got %d", report.DayCount)
	}

	empty := report.DailyBalances[2]
	if empty.EntryCount != 0 {
		t.Errorf("expected empty day, got %d entries", empty.EntryCount)
	}
	if !empty.OpeningBalance.Equal(empty.ClosingBalance) {
		t.Errorf("empty day must carry its opening forward: opening %s closing %s",
			empty.OpeningBalance, empty.ClosingBalance)
	}
	if !empty.OpeningBalance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected empty day opening 150, got %s", empty.OpeningBalance)
	}
}

func TestBuildReportSingleDay(t *testing.T) {
	f, reportUC := newReportFixture(t)
	seedEntry(f, "2024-01-01", domain.EntryTypeCredit, "10")

	report, err := reportUC.BuildReport(context.Background(), mustDay(t, "2024-01-01"), mustDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.DayCount != 1 {
		t.Errorf("expected 1 day, got %d", report.DayCount)
	}
	if !report.ClosingBalance.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected closing 10, got %s", report.ClosingBalance)
	}
}

func TestBuildReportRejectsInvertedPeriod(t *testing.T) {
	_, reportUC := newReportFixture(t)

	_, err := reportUC.BuildReport(context.Background(), mustDay(t, "2024-01-02"), mustDay(t, "2024-01-01"))
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestBuildReportServedFromCache(t *testing.T) {
	f, reportUC := newReportFixture(t)
	seedEntry(f, "2024-01-01", domain.EntryTypeCredit, "100")

	ctx := context.Background()
	start, end := mustDay(t, "2024-01-01"), mustDay(t, "2024-01-01")

	first, err := reportUC.BuildReport(ctx, start, end)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}

	// A second build must not hit the balance provider again.
	f.balances.GetFunc = func(ctx context.Context, day domain.Day) (*domain.DailyBalance, error) {
		t.Fatal("balance store consulted despite cached report")
		return nil, nil
	}
	f.entries.GetByDateRangeFunc = func(ctx context.Context, from, to time.Time) ([]*domain.LedgerEntry, error) {
		t.Fatal("entry source consulted despite cached report")
		return nil, nil
	}

	second, err := reportUC.BuildReport(ctx, start, end)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !second.ClosingBalance.Equal(first.ClosingBalance) || second.DayCount != first.DayCount {
		t.Errorf("cached report differs: %+v vs %+v", second, first)
	}
}

func TestArchiveReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshots := mocks.NewMockSnapshotRepository(ctrl)
	snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return("01SNAPSHOT", nil)

	reportUC := usecase.NewReportUseCase(usecase.ReportConfig{
		Snapshots:   snapshots,
		Logger:      zerolog.Nop(),
		Environment: "test",
	})

	id, err := reportUC.ArchiveReport(context.Background(), &domain.PeriodReport{
		Start: mustDay(t, "2024-01-01"),
		End:   mustDay(t, "2024-01-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "01SNAPSHOT" {
		t.Errorf("expected snapshot id 01SNAPSHOT, got %s", id)
	}
}

func TestArchiveReportNotConfigured(t *testing.T) {
	_, reportUC := newReportFixture(t)

	if _, err := reportUC.ArchiveReport(context.Background(), &domain.PeriodReport{}); err == nil {
		t.Fatal("expected error when archiving is not configured")
	}
}
