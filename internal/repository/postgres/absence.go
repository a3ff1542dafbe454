package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// AbsenceRepository implements repository.AbsenceRepository for PostgreSQL
type AbsenceRepository struct {
	db *sql.DB
}

func NewAbsenceRepository(db *sql.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

func (r *AbsenceRepository) Create(ctx context.Context, a *entity.Absence) error {
	query := `
		INSERT INTO absences (publisher_id, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, a.PublisherID, a.StartDate, a.EndDate, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to create absence: %w", err)
	}
	return nil
}

func (r *AbsenceRepository) ListByPublisher(ctx context.Context, publisherID entity.PublisherID) ([]*entity.Absence, error) {
	query := `
		SELECT id, publisher_id, start_date, end_date, created_at
		FROM absences
		WHERE publisher_id = $1
		ORDER BY start_date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, publisherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	var out []*entity.Absence
	for rows.Next() {
		a := &entity.Absence{}
		if err := rows.Scan(&a.ID, &a.PublisherID, &a.StartDate, &a.EndDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AbsenceRepository) IsAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM absences
			WHERE publisher_id = $1 AND start_date <= $2 AND end_date >= $2
		)
	`
	if err := r.db.QueryRowContext(ctx, query, publisherID, day).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check absence: %w", err)
	}
	return exists, nil
}

func (r *AbsenceRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM absences WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Absence", ResourceID: strconv.FormatInt(id, 10)}
	}
	return nil
}
