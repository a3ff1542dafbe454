package helpers

import (
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
)

// PublisherBuilder builds Publisher entities with a fluent interface.
type PublisherBuilder struct {
	id             entity.PublisherID
	firstName      string
	lastName       string
	gender         entity.Gender
	isShiftManager bool
	priority       int
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
}

// NewPublisherBuilder creates a new PublisherBuilder with sensible defaults.
func NewPublisherBuilder() *PublisherBuilder {
	now := time.Now().UTC()
	return &PublisherBuilder{
		id:        1,
		firstName: "Test",
		lastName:  "Publisher",
		gender:    entity.GenderMale,
		priority:  1,
		createdAt: now,
		updatedAt: now,
	}
}

func (pb *PublisherBuilder) WithID(id entity.PublisherID) *PublisherBuilder {
	pb.id = id
	return pb
}

func (pb *PublisherBuilder) WithName(first, last string) *PublisherBuilder {
	pb.firstName = first
	pb.lastName = last
	return pb
}

func (pb *PublisherBuilder) WithGender(gender entity.Gender) *PublisherBuilder {
	pb.gender = gender
	return pb
}

func (pb *PublisherBuilder) WithIsShiftManager(isShiftManager bool) *PublisherBuilder {
	pb.isShiftManager = isShiftManager
	return pb
}

func (pb *PublisherBuilder) WithPriority(priority int) *PublisherBuilder {
	pb.priority = priority
	return pb
}

func (pb *PublisherBuilder) WithCreatedAt(t time.Time) *PublisherBuilder {
	pb.createdAt = t
	return pb
}

func (pb *PublisherBuilder) WithUpdatedAt(t time.Time) *PublisherBuilder {
	pb.updatedAt = t
	return pb
}

func (pb *PublisherBuilder) WithDeletedAt(t *time.Time) *PublisherBuilder {
	pb.deletedAt = t
	return pb
}

// Build creates the Publisher entity.
func (pb *PublisherBuilder) Build() *entity.Publisher {
	return &entity.Publisher{
		ID:             pb.id,
		FirstName:      pb.firstName,
		LastName:       pb.lastName,
		Gender:         pb.gender,
		IsShiftManager: pb.isShiftManager,
		Priority:       pb.priority,
		CreatedAt:      pb.createdAt,
		UpdatedAt:      pb.updatedAt,
		DeletedAt:      pb.deletedAt,
	}
}

// ScheduleBuilder builds Schedule entities with a fluent interface.
type ScheduleBuilder struct {
	id               entity.ScheduleID
	location         string
	startHour        string
	endHour          string
	weekday          int
	numPublishers    int
	numShiftManagers int
	numBrothers      int
	numSisters       int
	createdAt        time.Time
	updatedAt        time.Time
	deletedAt        *time.Time
}

// NewScheduleBuilder creates a new ScheduleBuilder with sensible defaults.
func NewScheduleBuilder() *ScheduleBuilder {
	now := time.Now().UTC()
	return &ScheduleBuilder{
		id:            1,
		location:      "Kingdom Hall",
		startHour:     "09:00",
		endHour:       "11:00",
		weekday:       6,
		numPublishers: 2,
		createdAt:     now,
		updatedAt:     now,
	}
}

func (sb *ScheduleBuilder) WithID(id entity.ScheduleID) *ScheduleBuilder {
	sb.id = id
	return sb
}

func (sb *ScheduleBuilder) WithLocation(location string) *ScheduleBuilder {
	sb.location = location
	return sb
}

func (sb *ScheduleBuilder) WithHours(start, end string) *ScheduleBuilder {
	sb.startHour = start
	sb.endHour = end
	return sb
}

func (sb *ScheduleBuilder) WithWeekday(weekday int) *ScheduleBuilder {
	sb.weekday = weekday
	return sb
}

func (sb *ScheduleBuilder) WithQuotas(numPublishers, numShiftManagers, numBrothers, numSisters int) *ScheduleBuilder {
	sb.numPublishers = numPublishers
	sb.numShiftManagers = numShiftManagers
	sb.numBrothers = numBrothers
	sb.numSisters = numSisters
	return sb
}

func (sb *ScheduleBuilder) WithDeletedAt(t *time.Time) *ScheduleBuilder {
	sb.deletedAt = t
	return sb
}

// Build creates the Schedule entity.
func (sb *ScheduleBuilder) Build() *entity.Schedule {
	return &entity.Schedule{
		ID:               sb.id,
		Location:         sb.location,
		StartHour:        sb.startHour,
		EndHour:          sb.endHour,
		Weekday:          sb.weekday,
		NumPublishers:    sb.numPublishers,
		NumShiftManagers: sb.numShiftManagers,
		NumBrothers:      sb.numBrothers,
		NumSisters:       sb.numSisters,
		CreatedAt:        sb.createdAt,
		UpdatedAt:        sb.updatedAt,
		DeletedAt:        sb.deletedAt,
	}
}

// AbsenceBuilder builds Absence entities with a fluent interface.
type AbsenceBuilder struct {
	id          int64
	publisherID entity.PublisherID
	startDate   time.Time
	endDate     time.Time
	createdAt   time.Time
}

// NewAbsenceBuilder creates a new AbsenceBuilder with sensible defaults.
func NewAbsenceBuilder() *AbsenceBuilder {
	now := time.Now().UTC()
	return &AbsenceBuilder{
		id:          1,
		publisherID: 1,
		startDate:   now,
		endDate:     now.AddDate(0, 0, 7),
		createdAt:   now,
	}
}

func (ab *AbsenceBuilder) WithID(id int64) *AbsenceBuilder {
	ab.id = id
	return ab
}

func (ab *AbsenceBuilder) WithPublisherID(id entity.PublisherID) *AbsenceBuilder {
	ab.publisherID = id
	return ab
}

func (ab *AbsenceBuilder) WithRange(start, end time.Time) *AbsenceBuilder {
	ab.startDate = start
	ab.endDate = end
	return ab
}

// Build creates the Absence entity.
func (ab *AbsenceBuilder) Build() *entity.Absence {
	return &entity.Absence{
		ID:          ab.id,
		PublisherID: ab.publisherID,
		StartDate:   ab.startDate,
		EndDate:     ab.endDate,
		CreatedAt:   ab.createdAt,
	}
}

// RelationshipBuilder builds Relationship entities with a fluent interface.
type RelationshipBuilder struct {
	id   int64
	a    entity.PublisherID
	b    entity.PublisherID
	kind entity.RelationshipKind
}

// NewRelationshipBuilder creates a new RelationshipBuilder with sensible defaults.
func NewRelationshipBuilder() *RelationshipBuilder {
	return &RelationshipBuilder{
		id:   1,
		a:    1,
		b:    2,
		kind: entity.RelationshipMandatory,
	}
}

func (rb *RelationshipBuilder) WithID(id int64) *RelationshipBuilder {
	rb.id = id
	return rb
}

func (rb *RelationshipBuilder) WithPair(a, b entity.PublisherID) *RelationshipBuilder {
	rb.a, rb.b = a, b
	return rb
}

func (rb *RelationshipBuilder) WithKind(kind entity.RelationshipKind) *RelationshipBuilder {
	rb.kind = kind
	return rb
}

// Build creates the Relationship entity.
func (rb *RelationshipBuilder) Build() *entity.Relationship {
	return &entity.Relationship{ID: rb.id, A: rb.a, B: rb.b, Kind: rb.kind}
}

// ShiftBuilder builds Shift entities with a fluent interface.
type ShiftBuilder struct {
	id            entity.ShiftID
	scheduleID    entity.ScheduleID
	startDatetime time.Time
	endDatetime   time.Time
	location      string
	publishers    []entity.PublisherID
	warning       string
	createdAt     time.Time
}

// NewShiftBuilder creates a new ShiftBuilder with sensible defaults.
func NewShiftBuilder() *ShiftBuilder {
	now := time.Now().UTC()
	return &ShiftBuilder{
		id:            1,
		scheduleID:    1,
		startDatetime: now,
		endDatetime:   now.Add(2 * time.Hour),
		location:      "Kingdom Hall",
		publishers:    []entity.PublisherID{},
		createdAt:     now,
	}
}

func (sb *ShiftBuilder) WithID(id entity.ShiftID) *ShiftBuilder {
	sb.id = id
	return sb
}

func (sb *ShiftBuilder) WithScheduleID(id entity.ScheduleID) *ShiftBuilder {
	sb.scheduleID = id
	return sb
}

func (sb *ShiftBuilder) WithWindow(start, end time.Time) *ShiftBuilder {
	sb.startDatetime = start
	sb.endDatetime = end
	return sb
}

func (sb *ShiftBuilder) WithLocation(location string) *ShiftBuilder {
	sb.location = location
	return sb
}

func (sb *ShiftBuilder) WithPublishers(publishers ...entity.PublisherID) *ShiftBuilder {
	sb.publishers = publishers
	return sb
}

func (sb *ShiftBuilder) WithWarning(warning string) *ShiftBuilder {
	sb.warning = warning
	return sb
}

// Build creates the Shift entity.
func (sb *ShiftBuilder) Build() *entity.Shift {
	return &entity.Shift{
		ID:            sb.id,
		ScheduleID:    sb.scheduleID,
		StartDatetime: sb.startDatetime,
		EndDatetime:   sb.endDatetime,
		Location:      sb.location,
		Publishers:    sb.publishers,
		Warning:       sb.warning,
		CreatedAt:     sb.createdAt,
	}
}
