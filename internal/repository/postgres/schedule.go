package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// ScheduleRepository implements repository.ScheduleRepository for PostgreSQL
type ScheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, location, start_hour, end_hour, weekday, num_publishers, num_shift_managers, num_brothers, num_sisters, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Location, s.StartHour, s.EndHour, s.Weekday, s.NumPublishers, s.NumShiftManagers, s.NumBrothers, s.NumSisters, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) scan(row *sql.Row) (*entity.Schedule, error) {
	s := &entity.Schedule{}
	err := row.Scan(&s.ID, &s.Location, &s.StartHour, &s.EndHour, &s.Weekday, &s.NumPublishers, &s.NumShiftManagers, &s.NumBrothers, &s.NumSisters, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	return s, err
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id entity.ScheduleID) (*entity.Schedule, error) {
	query := `
		SELECT id, location, start_hour, end_hour, weekday, num_publishers, num_shift_managers, num_brothers, num_sisters, created_at, updated_at, deleted_at
		FROM schedules
		WHERE id = $1 AND deleted_at IS NULL
	`
	s, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return s, nil
}

func (r *ScheduleRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var out []*entity.Schedule
	for rows.Next() {
		s := &entity.Schedule{}
		if err := rows.Scan(&s.ID, &s.Location, &s.StartHour, &s.EndHour, &s.Weekday, &s.NumPublishers, &s.NumShiftManagers, &s.NumBrothers, &s.NumSisters, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) List(ctx context.Context) ([]*entity.Schedule, error) {
	query := `
		SELECT id, location, start_hour, end_hour, weekday, num_publishers, num_shift_managers, num_brothers, num_sisters, created_at, updated_at, deleted_at
		FROM schedules
		WHERE deleted_at IS NULL
		ORDER BY id ASC
	`
	return r.list(ctx, query)
}

func (r *ScheduleRepository) ListByWeekday(ctx context.Context, weekday int) ([]*entity.Schedule, error) {
	query := `
		SELECT id, location, start_hour, end_hour, weekday, num_publishers, num_shift_managers, num_brothers, num_sisters, created_at, updated_at, deleted_at
		FROM schedules
		WHERE deleted_at IS NULL AND weekday = $1
		ORDER BY id ASC
	`
	return r.list(ctx, query, weekday)
}

func (r *ScheduleRepository) Update(ctx context.Context, s *entity.Schedule) error {
	query := `
		UPDATE schedules
		SET location = $2, start_hour = $3, end_hour = $4, weekday = $5, num_publishers = $6, num_shift_managers = $7, num_brothers = $8, num_sisters = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, s.ID, s.Location, s.StartHour, s.EndHour, s.Weekday, s.NumPublishers, s.NumShiftManagers, s.NumBrothers, s.NumSisters, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: strconv.FormatInt(s.ID, 10)}
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id entity.ScheduleID) error {
	query := `UPDATE schedules SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: strconv.FormatInt(id, 10)}
	}
	return nil
}

func (r *ScheduleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM schedules WHERE deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return count, nil
}
