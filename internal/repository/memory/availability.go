package memory

import (
	"context"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

type availabilityRepo struct{ s *Store }

// AvailabilityRepository returns the store's availability surface.
func (s *Store) AvailabilityRepository() repository.AvailabilityRepository {
	return availabilityRepo{s}
}

func (r availabilityRepo) Set(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	return r.s.setAvailability(ctx, publisherID, scheduleID)
}

func (r availabilityRepo) Unset(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	return r.s.unsetAvailability(ctx, publisherID, scheduleID)
}

func (r availabilityRepo) ListPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error) {
	return r.s.listPublishersForSchedule(ctx, scheduleID)
}

func (r availabilityRepo) ListSchedulesForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.ScheduleID, error) {
	return r.s.listSchedulesForPublisher(ctx, publisherID)
}

func (s *Store) setAvailability(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	s.availability[availabilityKey{publisherID: publisherID, scheduleID: scheduleID}] = struct{}{}
	return nil
}

func (s *Store) unsetAvailability(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	delete(s.availability, availabilityKey{publisherID: publisherID, scheduleID: scheduleID})
	return nil
}

func (s *Store) listPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]entity.PublisherID, 0)
	for key := range s.availability {
		if key.scheduleID == scheduleID {
			if p, ok := s.publishers[key.publisherID]; ok && !p.IsDeleted() {
				out = append(out, key.publisherID)
			}
		}
	}
	return out, nil
}

func (s *Store) listSchedulesForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.ScheduleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]entity.ScheduleID, 0)
	for key := range s.availability {
		if key.publisherID == publisherID {
			if sched, ok := s.schedules[key.scheduleID]; ok && !sched.IsDeleted() {
				out = append(out, key.scheduleID)
			}
		}
	}
	return out, nil
}

// ListPublishersForSchedule is the engine-facing Store method.
func (s *Store) ListPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error) {
	return s.listPublishersForSchedule(ctx, scheduleID)
}
