package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/iho/gobalance/internal/domain"
)

// SnapshotRepository implements usecase.SnapshotRepository. Archived
// reports are stored whole as JSONB rows keyed by a ULID.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Save archives a period report and returns the snapshot ID.
func (r *SnapshotRepository) Save(ctx context.Context, report *domain.PeriodReport) (string, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return "", domain.NewDataAccessError("encode report snapshot", err)
	}

	const query = `
		INSERT INTO report_snapshots (id, period_start, period_end, payload, archived_at)
		VALUES ($1, $2, $3, $4, $5)`

	id := ulid.Make().String()
	_, err = r.pool.Exec(ctx, query,
		id,
		report.Start.String(),
		report.End.String(),
		payload,
		time.Now().UTC(),
	)
	if err != nil {
		return "", domain.NewDataAccessError("insert report snapshot", err)
	}

	return id, nil
}
