package memory

import (
	"context"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

type absenceRepo struct{ s *Store }

// AbsenceRepository returns the store's absence CRUD surface.
func (s *Store) AbsenceRepository() repository.AbsenceRepository { return absenceRepo{s} }

func (r absenceRepo) Create(ctx context.Context, a *entity.Absence) error {
	return r.s.createAbsence(ctx, a)
}

func (r absenceRepo) ListByPublisher(ctx context.Context, publisherID entity.PublisherID) ([]*entity.Absence, error) {
	return r.s.listAbsencesByPublisher(ctx, publisherID)
}

func (r absenceRepo) IsAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error) {
	return r.s.isAbsentOn(ctx, publisherID, day)
}

func (r absenceRepo) Delete(ctx context.Context, id int64) error {
	return r.s.deleteAbsence(ctx, id)
}

func (s *Store) createAbsence(ctx context.Context, a *entity.Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	s.nextAbsenceID++
	a.ID = s.nextAbsenceID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.absences[a.ID] = a
	return nil
}

func (s *Store) listAbsencesByPublisher(ctx context.Context, publisherID entity.PublisherID) ([]*entity.Absence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]*entity.Absence, 0)
	for _, a := range s.absences {
		if a.PublisherID == publisherID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) isAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	for _, a := range s.absences {
		if a.PublisherID == publisherID && a.Contains(day) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) deleteAbsence(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	if _, ok := s.absences[id]; !ok {
		return &repository.NotFoundError{ResourceType: "Absence", ResourceID: idString(id)}
	}
	delete(s.absences, id)
	return nil
}

// IsAbsentOn is the engine-facing Store method.
func (s *Store) IsAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error) {
	return s.isAbsentOn(ctx, publisherID, day)
}
