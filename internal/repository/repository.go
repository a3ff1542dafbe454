// Package repository defines the Entity Store contract the engine reads
// from and writes to, independent of the backing storage technology.
package repository

import (
	"context"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
)

// Store is the read/write contract the Generator Driver depends on.
type Store interface {
	ListPublishers(ctx context.Context) ([]*entity.Publisher, error)
	ListSchedules(ctx context.Context) ([]*entity.Schedule, error)
	ListPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error)
	IsAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error)
	ListRelationshipsForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error)
	ListShiftsBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error)
	CreateShift(ctx context.Context, shift *entity.Shift) (entity.ShiftID, error)

	// CreateShifts persists every shift produced by one generation run
	// as a single unit of work, so a run that fails partway through
	// writing never leaves some of its shifts committed and others not.
	CreateShifts(ctx context.Context, shifts []*entity.Shift) ([]entity.ShiftID, error)
}

// PublisherRepository defines CRUD data access for publishers. The
// engine itself only needs Store; this finer-grained interface backs
// the HTTP CRUD surface.
type PublisherRepository interface {
	Create(ctx context.Context, p *entity.Publisher) error
	GetByID(ctx context.Context, id entity.PublisherID) (*entity.Publisher, error)
	List(ctx context.Context) ([]*entity.Publisher, error)
	Update(ctx context.Context, p *entity.Publisher) error
	Delete(ctx context.Context, id entity.PublisherID) error
	Count(ctx context.Context) (int64, error)
}

// ScheduleRepository defines CRUD data access for schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, s *entity.Schedule) error
	GetByID(ctx context.Context, id entity.ScheduleID) (*entity.Schedule, error)
	List(ctx context.Context) ([]*entity.Schedule, error)
	ListByWeekday(ctx context.Context, weekday int) ([]*entity.Schedule, error)
	Update(ctx context.Context, s *entity.Schedule) error
	Delete(ctx context.Context, id entity.ScheduleID) error
	Count(ctx context.Context) (int64, error)
}

// AbsenceRepository defines data access for absences.
type AbsenceRepository interface {
	Create(ctx context.Context, a *entity.Absence) error
	ListByPublisher(ctx context.Context, publisherID entity.PublisherID) ([]*entity.Absence, error)
	IsAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// AvailabilityRepository defines data access for the
// (publisher, schedule) eligibility relation.
type AvailabilityRepository interface {
	Set(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error
	Unset(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error
	ListPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error)
	ListSchedulesForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.ScheduleID, error)
}

// RelationshipRepository defines data access for publisher relationships.
type RelationshipRepository interface {
	Create(ctx context.Context, r *entity.Relationship) error
	Delete(ctx context.Context, id int64) error
	ListForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error)
}

// ShiftRepository defines data access for generated shifts.
type ShiftRepository interface {
	Create(ctx context.Context, s *entity.Shift) (entity.ShiftID, error)
	GetByLocationAndWindow(ctx context.Context, location string, start, end time.Time) (*entity.Shift, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error)
}

// Database groups every finer-grained repository plus lifecycle
// management.
type Database interface {
	// BeginTx opens a unit of work whose writes only become visible to
	// other readers on Commit. Generate's batched shift writes are the
	// only caller today; it exists on Database rather than Store so
	// HTTP-layer multi-write operations can adopt it later too.
	BeginTx(ctx context.Context) (Transaction, error)

	PublisherRepository() PublisherRepository
	ScheduleRepository() ScheduleRepository
	AbsenceRepository() AbsenceRepository
	AvailabilityRepository() AvailabilityRepository
	RelationshipRepository() RelationshipRepository
	ShiftRepository() ShiftRepository

	Close() error
	Health(ctx context.Context) error
}

// Transaction is a unit-of-work handle returned by Database.BeginTx.
// Callers must call exactly one of Commit or Rollback.
type Transaction interface {
	ShiftRepository() ShiftRepository

	Commit() error
	Rollback() error
}

// NotFoundError represents a record not found error.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.ResourceType + " " + e.ResourceID
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError represents a validation error surfaced by a repository.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
