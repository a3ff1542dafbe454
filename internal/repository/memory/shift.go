package memory

import (
	"context"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

type shiftRepo struct{ s *Store }

// ShiftRepository returns the store's shift CRUD surface.
func (s *Store) ShiftRepository() repository.ShiftRepository { return shiftRepo{s} }

func (r shiftRepo) Create(ctx context.Context, sh *entity.Shift) (entity.ShiftID, error) {
	return r.s.createShift(ctx, sh)
}

func (r shiftRepo) GetByLocationAndWindow(ctx context.Context, location string, start, end time.Time) (*entity.Shift, error) {
	return r.s.getShiftByLocationAndWindow(ctx, location, start, end)
}

func (r shiftRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error) {
	return r.s.listShiftsBetween(ctx, start, end)
}

func (s *Store) createShift(ctx context.Context, sh *entity.Shift) (entity.ShiftID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	s.nextShiftID++
	sh.ID = s.nextShiftID
	if sh.CreatedAt.IsZero() {
		sh.CreatedAt = time.Now().UTC()
	}
	s.shifts[sh.ID] = sh
	return sh.ID, nil
}

func (s *Store) getShiftByLocationAndWindow(ctx context.Context, location string, start, end time.Time) (*entity.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	for _, sh := range s.shifts {
		if sh.Location == location && sh.StartDatetime.Equal(start) && sh.EndDatetime.Equal(end) {
			return sh, nil
		}
	}
	return nil, &repository.NotFoundError{ResourceType: "Shift", ResourceID: location}
}

func (s *Store) listShiftsBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.queryCount++

	out := make([]*entity.Shift, 0)
	for _, sh := range s.shifts {
		if !sh.StartDatetime.Before(start) && !sh.StartDatetime.After(end) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// ListShiftsBetween is the engine-facing Store method.
func (s *Store) ListShiftsBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error) {
	return s.listShiftsBetween(ctx, start, end)
}

// CreateShift is the engine-facing Store method.
func (s *Store) CreateShift(ctx context.Context, sh *entity.Shift) (entity.ShiftID, error) {
	return s.createShift(ctx, sh)
}

// CreateShifts is the engine-facing batched Store method: every shift
// is written under one lock acquisition, so a generation run's shifts
// appear to other readers all at once or not at all.
func (s *Store) CreateShifts(ctx context.Context, shifts []*entity.Shift) ([]entity.ShiftID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++

	ids := make([]entity.ShiftID, len(shifts))
	for i, sh := range shifts {
		s.nextShiftID++
		sh.ID = s.nextShiftID
		if sh.CreatedAt.IsZero() {
			sh.CreatedAt = time.Now().UTC()
		}
		s.shifts[sh.ID] = sh
		ids[i] = sh.ID
	}
	return ids, nil
}

// memTx is an in-memory repository.Transaction: shifts created through
// it are staged and only become visible to other readers on Commit.
type memTx struct {
	s       *Store
	pending []*entity.Shift
}

// BeginTx opens a unit of work for multi-write operations such as the
// engine's batched shift persistence.
func (s *Store) BeginTx(ctx context.Context) (repository.Transaction, error) {
	return &memTx{s: s}, nil
}

func (t *memTx) ShiftRepository() repository.ShiftRepository { return memTxShiftRepo{t} }

// Commit applies every staged shift under one lock acquisition.
func (t *memTx) Commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.queryCount++

	for _, sh := range t.pending {
		t.s.nextShiftID++
		sh.ID = t.s.nextShiftID
		if sh.CreatedAt.IsZero() {
			sh.CreatedAt = time.Now().UTC()
		}
		t.s.shifts[sh.ID] = sh
	}
	return nil
}

// Rollback discards every staged shift; nothing was ever visible to
// other readers, so there is nothing else to undo.
func (t *memTx) Rollback() error {
	t.pending = nil
	return nil
}

type memTxShiftRepo struct{ tx *memTx }

// Create stages a shift; unlike the non-transactional path, its ID is
// not assigned until Commit.
func (r memTxShiftRepo) Create(ctx context.Context, sh *entity.Shift) (entity.ShiftID, error) {
	r.tx.pending = append(r.tx.pending, sh)
	return 0, nil
}

func (r memTxShiftRepo) GetByLocationAndWindow(ctx context.Context, location string, start, end time.Time) (*entity.Shift, error) {
	return r.tx.s.getShiftByLocationAndWindow(ctx, location, start, end)
}

func (r memTxShiftRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error) {
	return r.tx.s.listShiftsBetween(ctx, start, end)
}
