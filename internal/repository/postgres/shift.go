package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// dbExecutor is satisfied by both *sql.DB and *sql.Tx, so ShiftRepository
// can run unmodified inside a transaction opened by DB.BeginTx.
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ShiftRepository implements repository.ShiftRepository for PostgreSQL
type ShiftRepository struct {
	db dbExecutor
}

func NewShiftRepository(db dbExecutor) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, s *entity.Shift) (entity.ShiftID, error) {
	query := `
		INSERT INTO shifts (schedule_id, start_datetime, end_datetime, location, publishers, warning, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		s.ScheduleID, s.StartDatetime, s.EndDatetime, s.Location, pq.Array(s.Publishers), s.Warning, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to create shift: %w", err)
	}
	return s.ID, nil
}

func (r *ShiftRepository) GetByLocationAndWindow(ctx context.Context, location string, start, end time.Time) (*entity.Shift, error) {
	s := &entity.Shift{}
	query := `
		SELECT id, schedule_id, start_datetime, end_datetime, location, publishers, warning, created_at
		FROM shifts
		WHERE location = $1 AND start_datetime = $2 AND end_datetime = $3
	`
	err := r.db.QueryRowContext(ctx, query, location, start, end).Scan(
		&s.ID, &s.ScheduleID, &s.StartDatetime, &s.EndDatetime, &s.Location, pq.Array(&s.Publishers), &s.Warning, &s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Shift", ResourceID: location}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

func (r *ShiftRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error) {
	query := `
		SELECT id, schedule_id, start_datetime, end_datetime, location, publishers, warning, created_at
		FROM shifts
		WHERE start_datetime >= $1 AND start_datetime <= $2
		ORDER BY start_datetime ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Shift
	for rows.Next() {
		s := &entity.Shift{}
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.StartDatetime, &s.EndDatetime, &s.Location, pq.Array(&s.Publishers), &s.Warning, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
