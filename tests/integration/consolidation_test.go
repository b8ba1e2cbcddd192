package integration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobalance/internal/adapter/repository/postgres"
	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
	"github.com/iho/gobalance/tests/testutil"
)

func setup(t *testing.T) (*testutil.TestDB, *usecase.ConsolidationUseCase, *postgres.EntryRepository) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(context.Background())

	entryRepo := postgres.NewEntryRepository(testDB.Pool)
	balanceRepo := postgres.NewBalanceRepository(testDB.Pool)

	uc := usecase.NewConsolidationUseCase(usecase.ConsolidationConfig{
		EntryRepo:   entryRepo,
		BalanceRepo: balanceRepo,
		Logger:      zerolog.Nop(),
		Environment: "integration",
	})

	return testDB, uc, entryRepo
}

func TestConsolidationRoundTrip(t *testing.T) {
	_, uc, entryRepo := setup(t)
	ctx := context.Background()

	for _, e := range []*domain.LedgerEntry{
		testutil.NewEntry("2024-03-01", domain.EntryTypeCredit, "1000.00"),
		testutil.NewEntry("2024-03-01", domain.EntryTypeDebit, "250.50"),
		testutil.NewEntry("2024-03-02", domain.EntryTypeCredit, "100.00"),
	} {
		if err := entryRepo.Create(ctx, e); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
	}

	day1, _ := domain.ParseDay("2024-03-01")
	day2, _ := domain.ParseDay("2024-03-02")

	b1, err := uc.GetDailyBalance(ctx, day1)
	if err != nil {
		t.Fatalf("failed to get day 1 balance: %v", err)
	}
	if !b1.ClosingBalance.Equal(decimal.RequireFromString("749.50")) {
		t.Errorf("expected day 1 closing 749.50, got %s", b1.ClosingBalance)
	}

	b2, err := uc.GetDailyBalance(ctx, day2)
	if err != nil {
		t.Fatalf("failed to get day 2 balance: %v", err)
	}
	if !b2.OpeningBalance.Equal(b1.ClosingBalance) {
		t.Errorf("day 2 opening %s must equal day 1 closing %s", b2.OpeningBalance, b1.ClosingBalance)
	}
	if !b2.ClosingBalance.Equal(decimal.RequireFromString("849.50")) {
		t.Errorf("expected day 2 closing 849.50, got %s", b2.ClosingBalance)
	}

	// Rereads come from the store and match exactly.
	again, err := uc.GetDailyBalance(ctx, day1)
	if err != nil {
		t.Fatalf("failed to reread day 1: %v", err)
	}
	if !again.EqualValues(b1) {
		t.Errorf("reread differs: %+v vs %+v", again, b1)
	}
}

func TestBackdatedEntryCascadeAgainstStore(t *testing.T) {
	_, uc, entryRepo := setup(t)
	ctx := context.Background()

	if err := entryRepo.Create(ctx, testutil.NewEntry("2024-03-01", domain.EntryTypeCredit, "100.00")); err != nil {
		t.Fatal(err)
	}
	if err := entryRepo.Create(ctx, testutil.NewEntry("2024-03-02", domain.EntryTypeCredit, "50.00")); err != nil {
		t.Fatal(err)
	}

	day1, _ := domain.ParseDay("2024-03-01")
	day2, _ := domain.ParseDay("2024-03-02")

	if _, err := uc.OnEntryCreated(ctx, day1); err != nil {
		t.Fatalf("initial consolidation failed: %v", err)
	}

	// Backdate a debit into day 1 and retrigger.
	if err := entryRepo.Create(ctx, testutil.NewEntry("2024-03-01", domain.EntryTypeDebit, "10.00")); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.OnEntryCreated(ctx, day1); err != nil {
		t.Fatalf("retrigger failed: %v", err)
	}

	b2, err := uc.GetDailyBalance(ctx, day2)
	if err != nil {
		t.Fatalf("failed to get day 2: %v", err)
	}
	if !b2.OpeningBalance.Equal(decimal.RequireFromString("90.00")) {
		t.Errorf("expected day 2 opening 90.00 after cascade, got %s", b2.OpeningBalance)
	}
	if !b2.ClosingBalance.Equal(decimal.RequireFromString("140.00")) {
		t.Errorf("expected day 2 closing 140.00 after cascade, got %s", b2.ClosingBalance)
	}
}
