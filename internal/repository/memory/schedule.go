package memory

import (
	"context"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

type scheduleRepo struct{ s *Store }

// ScheduleRepository returns the store's schedule CRUD surface.
func (s *Store) ScheduleRepository() repository.ScheduleRepository { return scheduleRepo{s} }

func (r scheduleRepo) Create(ctx context.Context, sched *entity.Schedule) error {
	return r.s.createSchedule(ctx, sched)
}

func (r scheduleRepo) GetByID(ctx context.Context, id entity.ScheduleID) (*entity.Schedule, error) {
	return r.s.getScheduleByID(ctx, id)
}

func (r scheduleRepo) List(ctx context.Context) ([]*entity.Schedule, error) {
	return r.s.listSchedules(ctx)
}

func (r scheduleRepo) ListByWeekday(ctx context.Context, weekday int) ([]*entity.Schedule, error) {
	return r.s.listSchedulesByWeekday(ctx, weekday)
}

func (r scheduleRepo) Update(ctx context.Context, sched *entity.Schedule) error {
	return r.s.updateSchedule(ctx, sched)
}

func (r scheduleRepo) Delete(ctx context.Context, id entity.ScheduleID) error {
	return r.s.deleteSchedule(ctx, id)
}

func (r scheduleRepo) Count(ctx context.Context) (int64, error) {
	return r.s.countSchedules(ctx)
}

func (s *Store) createSchedule(ctx context.Context, sched *entity.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	now := time.Now().UTC()
	if sched.CreatedAt.IsZero() {
		sched.CreatedAt = now
	}
	sched.UpdatedAt = now
	s.schedules[sched.ID] = sched
	return nil
}

func (s *Store) getScheduleByID(ctx context.Context, id entity.ScheduleID) (*entity.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	sched, ok := s.schedules[id]
	if !ok || sched.IsDeleted() {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: idString(id)}
	}
	return sched, nil
}

func (s *Store) listSchedules(ctx context.Context) ([]*entity.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]*entity.Schedule, 0, len(s.schedules))
	for _, sched := range s.schedules {
		if !sched.IsDeleted() {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (s *Store) listSchedulesByWeekday(ctx context.Context, weekday int) ([]*entity.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]*entity.Schedule, 0)
	for _, sched := range s.schedules {
		if !sched.IsDeleted() && sched.Weekday == weekday {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (s *Store) updateSchedule(ctx context.Context, sched *entity.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	if _, ok := s.schedules[sched.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: idString(sched.ID)}
	}
	sched.UpdatedAt = time.Now().UTC()
	s.schedules[sched.ID] = sched
	return nil
}

func (s *Store) deleteSchedule(ctx context.Context, id entity.ScheduleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	sched, ok := s.schedules[id]
	if !ok {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: idString(id)}
	}
	now := time.Now().UTC()
	sched.DeletedAt = &now
	return nil
}

func (s *Store) countSchedules(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	var n int64
	for _, sched := range s.schedules {
		if !sched.IsDeleted() {
			n++
		}
	}
	return n, nil
}

// ListSchedules is the engine-facing Store method.
func (s *Store) ListSchedules(ctx context.Context) ([]*entity.Schedule, error) {
	return s.listSchedules(ctx)
}
