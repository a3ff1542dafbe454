package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
)

// AvailabilityRepository implements repository.AvailabilityRepository for PostgreSQL
type AvailabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Set(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	query := `
		INSERT INTO availability (publisher_id, schedule_id)
		VALUES ($1, $2)
		ON CONFLICT (publisher_id, schedule_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, publisherID, scheduleID); err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) Unset(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	query := `DELETE FROM availability WHERE publisher_id = $1 AND schedule_id = $2`
	if _, err := r.db.ExecContext(ctx, query, publisherID, scheduleID); err != nil {
		return fmt.Errorf("failed to unset availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) ListPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error) {
	query := `
		SELECT a.publisher_id
		FROM availability a
		JOIN publishers p ON p.id = a.publisher_id
		WHERE a.schedule_id = $1 AND p.deleted_at IS NULL
		ORDER BY a.publisher_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list publishers for schedule: %w", err)
	}
	defer rows.Close()

	var out []entity.PublisherID
	for rows.Next() {
		var id entity.PublisherID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan publisher id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *AvailabilityRepository) ListSchedulesForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.ScheduleID, error) {
	query := `
		SELECT schedule_id FROM availability
		WHERE publisher_id = $1
		ORDER BY schedule_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, publisherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules for publisher: %w", err)
	}
	defer rows.Close()

	var out []entity.ScheduleID
	for rows.Next() {
		var id entity.ScheduleID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan schedule id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
