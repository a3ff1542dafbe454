package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// RelationshipRepository implements repository.RelationshipRepository for PostgreSQL
type RelationshipRepository struct {
	db *sql.DB
}

func NewRelationshipRepository(db *sql.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

func (r *RelationshipRepository) Create(ctx context.Context, rel *entity.Relationship) error {
	if rel.A == rel.B {
		return entity.ErrSelfRelationship
	}
	a, b := entity.CanonicalPair(rel.A, rel.B)

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM relationships WHERE publisher_a = $1 AND publisher_b = $2)`
	if err := r.db.QueryRowContext(ctx, checkQuery, a, b).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existing relationship: %w", err)
	}
	if exists {
		return entity.ErrDuplicateRelationship
	}

	query := `
		INSERT INTO relationships (publisher_a, publisher_b, kind)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	rel.A, rel.B = a, b
	if err := r.db.QueryRowContext(ctx, query, a, b, string(rel.Kind)).Scan(&rel.ID); err != nil {
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

func (r *RelationshipRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM relationships WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: "Relationship", ResourceID: strconv.FormatInt(id, 10)}
	}
	return nil
}

func (r *RelationshipRepository) ListForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error) {
	query := `
		SELECT publisher_a, publisher_b, kind FROM relationships
		WHERE publisher_a = $1 OR publisher_b = $1
	`
	rows, err := r.db.QueryContext(ctx, query, publisherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	var out []entity.RelationshipEdge
	for rows.Next() {
		var a, b entity.PublisherID
		var kind string
		if err := rows.Scan(&a, &b, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		other := b
		if publisherID == b {
			other = a
		}
		out = append(out, entity.RelationshipEdge{Other: other, Kind: entity.RelationshipKind(kind)})
	}
	return out, rows.Err()
}
