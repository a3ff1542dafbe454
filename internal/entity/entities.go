// Package entity defines the domain types read and written by the shift
// generation engine and the CRUD surface that feeds it.
package entity

import "time"

// Opaque stable identifiers. Every entity is keyed by a plain integer
// rather than a UUID.
type (
	PublisherID = int64
	ScheduleID  = int64
	ShiftID     = int64
)

// Gender is one of the two values the business rules reason about.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// RelationshipKind distinguishes a hard co-assignment requirement from a
// soft scoring preference.
type RelationshipKind string

const (
	RelationshipMandatory   RelationshipKind = "Mandatory"
	RelationshipRecommended RelationshipKind = "Recommended"
)

// Publisher is a person who may be assigned to shifts.
type Publisher struct {
	ID             PublisherID
	FirstName      string
	LastName       string
	Gender         Gender
	IsShiftManager bool
	Priority       int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// IsDeleted reports whether the publisher has been soft-deleted from the
// CRUD surface. The engine never sees soft-deleted publishers; stores
// filter them out of every listing method.
func (p *Publisher) IsDeleted() bool {
	return p.DeletedAt != nil
}

// FullName is a display convenience used by the API and logs.
func (p *Publisher) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Schedule is a weekly recurring slot template at a location.
type Schedule struct {
	ID               ScheduleID
	Location         string
	StartHour        string // "HH:MM"
	EndHour          string // "HH:MM"
	Weekday          int    // 1=Monday .. 7=Sunday
	NumPublishers    int    // N
	NumShiftManagers int    // M
	NumBrothers      int    // B
	NumSisters       int    // S
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

func (s *Schedule) IsDeleted() bool {
	return s.DeletedAt != nil
}

// Absence is a closed date interval during which a publisher may not be
// assigned to any shift.
type Absence struct {
	ID          int64
	PublisherID PublisherID
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
}

// Contains reports whether the civil date d (truncated to midnight UTC
// by the caller) falls within the closed [StartDate, EndDate] interval.
func (a *Absence) Contains(d time.Time) bool {
	return !d.Before(a.StartDate) && !d.After(a.EndDate)
}

// Availability records that a publisher is eligible for a schedule.
// The pair (PublisherID, ScheduleID) is unique.
type Availability struct {
	PublisherID PublisherID
	ScheduleID  ScheduleID
}

// RelationshipEdge is one directed view of an unordered relationship,
// as returned by Store.ListRelationshipsForPublisher: "the publisher
// this edge belongs to has a relationship of Kind with Other".
type RelationshipEdge struct {
	Other PublisherID
	Kind  RelationshipKind
}

// Relationship is the canonical, storage-level representation of an
// unordered pair-level directive. A is always < B; see CanonicalPair.
type Relationship struct {
	ID   int64
	A    PublisherID
	B    PublisherID
	Kind RelationshipKind
}

// CanonicalPair orders two publisher ids so relationships and pair-count
// accumulators key consistently regardless of argument order.
func CanonicalPair(x, y PublisherID) (PublisherID, PublisherID) {
	if x < y {
		return x, y
	}
	return y, x
}

// Shift is a concrete materialization of a schedule on a specific date
// with a chosen publisher set. It is created once by the Generator
// Driver and never mutated afterward.
type Shift struct {
	ID            ShiftID
	ScheduleID    ScheduleID
	StartDatetime time.Time
	EndDatetime   time.Time
	Location      string
	Publishers    []PublisherID // ordered: managers, brothers, sisters, fillers, late mandatory adds
	Warning       string        // empty when fully satisfied
	CreatedAt     time.Time
}

// HasWarning reports whether full constraint satisfaction failed for
// this shift.
func (s *Shift) HasWarning() bool {
	return s.Warning != ""
}
