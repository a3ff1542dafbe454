package memory

import (
	"context"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

// publisherRepo adapts Store to repository.PublisherRepository. A thin
// wrapper type is needed because Store backs several repository
// interfaces that share method names (Create, List, ...); Go methods
// can't be overloaded on a single receiver type.
type publisherRepo struct{ s *Store }

// PublisherRepository returns the store's publisher CRUD surface.
func (s *Store) PublisherRepository() repository.PublisherRepository { return publisherRepo{s} }

func (r publisherRepo) Create(ctx context.Context, p *entity.Publisher) error {
	return r.s.createPublisher(ctx, p)
}

func (r publisherRepo) GetByID(ctx context.Context, id entity.PublisherID) (*entity.Publisher, error) {
	return r.s.getPublisherByID(ctx, id)
}

func (r publisherRepo) List(ctx context.Context) ([]*entity.Publisher, error) {
	return r.s.listPublishers(ctx)
}

func (r publisherRepo) Update(ctx context.Context, p *entity.Publisher) error {
	return r.s.updatePublisher(ctx, p)
}

func (r publisherRepo) Delete(ctx context.Context, id entity.PublisherID) error {
	return r.s.deletePublisher(ctx, id)
}

func (r publisherRepo) Count(ctx context.Context) (int64, error) {
	return r.s.countPublishers(ctx)
}

func (s *Store) createPublisher(ctx context.Context, p *entity.Publisher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.publishers[p.ID] = p
	return nil
}

func (s *Store) getPublisherByID(ctx context.Context, id entity.PublisherID) (*entity.Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	p, ok := s.publishers[id]
	if !ok || p.IsDeleted() {
		return nil, &repository.NotFoundError{ResourceType: "Publisher", ResourceID: idString(id)}
	}
	return p, nil
}

func (s *Store) listPublishers(ctx context.Context) ([]*entity.Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]*entity.Publisher, 0, len(s.publishers))
	for _, p := range s.publishers {
		if !p.IsDeleted() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) updatePublisher(ctx context.Context, p *entity.Publisher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	if _, ok := s.publishers[p.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "Publisher", ResourceID: idString(p.ID)}
	}
	p.UpdatedAt = time.Now().UTC()
	s.publishers[p.ID] = p
	return nil
}

func (s *Store) deletePublisher(ctx context.Context, id entity.PublisherID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	p, ok := s.publishers[id]
	if !ok {
		return &repository.NotFoundError{ResourceType: "Publisher", ResourceID: idString(id)}
	}
	now := time.Now().UTC()
	p.DeletedAt = &now
	return nil
}

func (s *Store) countPublishers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	var n int64
	for _, p := range s.publishers {
		if !p.IsDeleted() {
			n++
		}
	}
	return n, nil
}

// ListPublishers is the engine-facing Store method: every non-deleted
// publisher, in no particular order (the Generator Driver only cares
// about candidate pools per schedule, not global ordering).
func (s *Store) ListPublishers(ctx context.Context) ([]*entity.Publisher, error) {
	return s.listPublishers(ctx)
}
