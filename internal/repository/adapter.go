package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
)

// StoreAdapter satisfies Store by delegating to a Database's
// finer-grained repositories. The in-memory Store implements Store
// directly since one struct backs everything; a real backend like
// postgres.DB only implements Database, so the engine's driver is
// wired against this adapter instead when running off postgres.
type StoreAdapter struct {
	db Database
}

// NewStoreAdapter wraps a Database as a Store.
func NewStoreAdapter(db Database) *StoreAdapter {
	return &StoreAdapter{db: db}
}

func (a *StoreAdapter) ListPublishers(ctx context.Context) ([]*entity.Publisher, error) {
	return a.db.PublisherRepository().List(ctx)
}

func (a *StoreAdapter) ListSchedules(ctx context.Context) ([]*entity.Schedule, error) {
	return a.db.ScheduleRepository().List(ctx)
}

func (a *StoreAdapter) ListPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error) {
	return a.db.AvailabilityRepository().ListPublishersForSchedule(ctx, scheduleID)
}

func (a *StoreAdapter) IsAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error) {
	return a.db.AbsenceRepository().IsAbsentOn(ctx, publisherID, day)
}

func (a *StoreAdapter) ListRelationshipsForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error) {
	return a.db.RelationshipRepository().ListForPublisher(ctx, publisherID)
}

func (a *StoreAdapter) ListShiftsBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error) {
	return a.db.ShiftRepository().ListBetween(ctx, start, end)
}

func (a *StoreAdapter) CreateShift(ctx context.Context, shift *entity.Shift) (entity.ShiftID, error) {
	return a.db.ShiftRepository().Create(ctx, shift)
}

// CreateShifts writes every shift from one generation run inside a
// single transaction, rolling all of them back if any one fails.
func (a *StoreAdapter) CreateShifts(ctx context.Context, shifts []*entity.Shift) ([]entity.ShiftID, error) {
	tx, err := a.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin shift batch transaction: %w", err)
	}

	ids := make([]entity.ShiftID, 0, len(shifts))
	for _, sh := range shifts {
		id, err := tx.ShiftRepository().Create(ctx, sh)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("create shift in batch: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit shift batch transaction: %w", err)
	}
	return ids, nil
}
