package memory

import (
	"context"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

type relationshipRepo struct{ s *Store }

// RelationshipRepository returns the store's relationship CRUD surface.
func (s *Store) RelationshipRepository() repository.RelationshipRepository {
	return relationshipRepo{s}
}

func (r relationshipRepo) Create(ctx context.Context, rel *entity.Relationship) error {
	return r.s.createRelationship(ctx, rel)
}

func (r relationshipRepo) Delete(ctx context.Context, id int64) error {
	return r.s.deleteRelationship(ctx, id)
}

func (r relationshipRepo) ListForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error) {
	return r.s.listRelationshipsForPublisher(ctx, publisherID)
}

func (s *Store) createRelationship(ctx context.Context, rel *entity.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	if rel.A == rel.B {
		return entity.ErrSelfRelationship
	}
	a, b := entity.CanonicalPair(rel.A, rel.B)
	for _, existing := range s.relationships {
		ea, eb := entity.CanonicalPair(existing.A, existing.B)
		if ea == a && eb == b {
			return entity.ErrDuplicateRelationship
		}
	}

	s.nextRelationshipID++
	rel.ID = s.nextRelationshipID
	s.relationships[rel.ID] = rel
	return nil
}

func (s *Store) deleteRelationship(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	if _, ok := s.relationships[id]; !ok {
		return &repository.NotFoundError{ResourceType: "Relationship", ResourceID: idString(id)}
	}
	delete(s.relationships, id)
	return nil
}

func (s *Store) listRelationshipsForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]entity.RelationshipEdge, 0)
	for _, rel := range s.relationships {
		switch publisherID {
		case rel.A:
			out = append(out, entity.RelationshipEdge{Other: rel.B, Kind: rel.Kind})
		case rel.B:
			out = append(out, entity.RelationshipEdge{Other: rel.A, Kind: rel.Kind})
		}
	}
	return out, nil
}

// ListRelationshipsForPublisher is the engine-facing Store method.
func (s *Store) ListRelationshipsForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error) {
	return s.listRelationshipsForPublisher(ctx, publisherID)
}
