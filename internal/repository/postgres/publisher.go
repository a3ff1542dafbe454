package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// PublisherRepository implements repository.PublisherRepository for PostgreSQL
type PublisherRepository struct {
	db *sql.DB
}

// NewPublisherRepository creates a new PublisherRepository
func NewPublisherRepository(db *sql.DB) *PublisherRepository {
	return &PublisherRepository{db: db}
}

func (r *PublisherRepository) Create(ctx context.Context, p *entity.Publisher) error {
	query := `
		INSERT INTO publishers (id, first_name, last_name, gender, is_shift_manager, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.FirstName, p.LastName, string(p.Gender), p.IsShiftManager, p.Priority, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create publisher: %w", err)
	}
	return nil
}

func (r *PublisherRepository) GetByID(ctx context.Context, id entity.PublisherID) (*entity.Publisher, error) {
	p := &entity.Publisher{}
	query := `
		SELECT id, first_name, last_name, gender, is_shift_manager, priority, created_at, updated_at, deleted_at
		FROM publishers
		WHERE id = $1 AND deleted_at IS NULL
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, (*string)(&p.Gender), &p.IsShiftManager, &p.Priority, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Publisher", ResourceID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher: %w", err)
	}
	return p, nil
}

func (r *PublisherRepository) List(ctx context.Context) ([]*entity.Publisher, error) {
	query := `
		SELECT id, first_name, last_name, gender, is_shift_manager, priority, created_at, updated_at, deleted_at
		FROM publishers
		WHERE deleted_at IS NULL
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list publishers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Publisher
	for rows.Next() {
		p := &entity.Publisher{}
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, (*string)(&p.Gender), &p.IsShiftManager, &p.Priority, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan publisher: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PublisherRepository) Update(ctx context.Context, p *entity.Publisher) error {
	query := `
		UPDATE publishers
		SET first_name = $2, last_name = $3, gender = $4, is_shift_manager = $5, priority = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, p.ID, p.FirstName, p.LastName, string(p.Gender), p.IsShiftManager, p.Priority, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update publisher: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Publisher", ResourceID: strconv.FormatInt(p.ID, 10)}
	}
	return nil
}

func (r *PublisherRepository) Delete(ctx context.Context, id entity.PublisherID) error {
	query := `UPDATE publishers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete publisher: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Publisher", ResourceID: strconv.FormatInt(id, 10)}
	}
	return nil
}

func (r *PublisherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM publishers WHERE deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count publishers: %w", err)
	}
	return count, nil
}
