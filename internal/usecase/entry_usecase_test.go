package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
	"github.com/iho/gobalance/internal/usecase/mocks"
)

func TestCreateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)

	idGen.EXPECT().Generate().Return("01HENTRY00000000000000001")
	entryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	publisher.EXPECT().PublishEntryCreated(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewEntryUseCase(entryRepo, idGen, publisher, zerolog.Nop(), nil)

	entry, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Type:        domain.EntryTypeCredit,
		Amount:      decimal.NewFromInt(100),
		Description: "salary",
		Category:    "income",
		Date:        time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "01HENTRY00000000000000001", entry.ID)
	assert.Equal(t, domain.EntryStatusActive, entry.Status)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(100)))
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestCreateEntryValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateEntryInput
		wantErr error
	}{
		{
			name: "unknown type",
			input: usecase.CreateEntryInput{
				Type:   domain.EntryType("TRANSFERENCIA"),
				Amount: decimal.NewFromInt(10),
				Date:   time.Now(),
			},
			wantErr: domain.ErrInvalidEntryType,
		},
		{
			name: "zero amount",
			input: usecase.CreateEntryInput{
				Type: domain.EntryTypeCredit,
				Date: time.Now(),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: usecase.CreateEntryInput{
				Type:   domain.EntryTypeDebit,
				Amount: decimal.NewFromInt(-5),
				Date:   time.Now(),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "missing date",
			input: usecase.CreateEntryInput{
				Type:   domain.EntryTypeCredit,
				Amount: decimal.NewFromInt(10),
			},
			wantErr: domain.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			entryRepo := mocks.NewMockEntryRepository(ctrl)
			idGen := mocks.NewMockIDGenerator(ctrl)
			idGen.EXPECT().Generate().Return("01HENTRY00000000000000002")

			uc := usecase.NewEntryUseCase(entryRepo, idGen, nil, zerolog.Nop(), nil)

			_, err := uc.CreateEntry(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateEntrySurvivesPublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)

	idGen.EXPECT().Generate().Return("01HENTRY00000000000000003")
	entryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	publisher.EXPECT().PublishEntryCreated(gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

	uc := usecase.NewEntryUseCase(entryRepo, idGen, publisher, zerolog.Nop(), nil)

	entry, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Type:   domain.EntryTypeCredit,
		Amount: decimal.NewFromInt(1),
		Date:   time.Now(),
	})

	require.NoError(t, err, "a publish failure must not fail the write")
	assert.NotNil(t, entry)
}

func TestCreateEntryRepoFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	idGen.EXPECT().Generate().Return("01HENTRY00000000000000004")
	entryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(domain.NewDataAccessError("insert entry", errors.New("connection refused")))

	uc := usecase.NewEntryUseCase(entryRepo, idGen, nil, zerolog.Nop(), nil)

	_, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Type:   domain.EntryTypeCredit,
		Amount: decimal.NewFromInt(1),
		Date:   time.Now(),
	})

	require.Error(t, err)
	assert.True(t, domain.IsDataAccess(err))
}

func TestListEntriesDefaultsAndCaps(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		offset    int
		wantLimit int
		wantOff   int
	}{
		{name: "defaults", limit: 0, offset: -3, wantLimit: 50, wantOff: 0},
		{name: "capped", limit: 500, offset: 10, wantLimit: 100, wantOff: 10},
		{name: "passthrough", limit: 25, offset: 5, wantLimit: 25, wantOff: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			entryRepo := mocks.NewMockEntryRepository(ctrl)
			entryRepo.EXPECT().
				List(gomock.Any(), usecase.EntryFilter{Limit: tt.wantLimit, Offset: tt.wantOff}).
				Return(nil, nil)

			uc := usecase.NewEntryUseCase(entryRepo, nil, nil, zerolog.Nop(), nil)

			_, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{
				Limit:  tt.limit,
				Offset: tt.offset,
			})
			require.NoError(t, err)
		})
	}
}
