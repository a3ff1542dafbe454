package helpers

import (
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
)

// Factory functions create valid entities with sensible defaults.

// CreateValidPublisher creates a valid Publisher with all required fields.
func CreateValidPublisher() *entity.Publisher {
	return NewPublisherBuilder().Build()
}

// CreateValidPublisherWithGender creates a valid Publisher of a given gender.
func CreateValidPublisherWithGender(gender entity.Gender) *entity.Publisher {
	return NewPublisherBuilder().WithGender(gender).Build()
}

// CreateValidShiftManager creates a valid male Publisher marked as a shift manager.
func CreateValidShiftManager() *entity.Publisher {
	return NewPublisherBuilder().
		WithGender(entity.GenderMale).
		WithIsShiftManager(true).
		Build()
}

// CreateValidPublisherDeleted creates a valid but soft-deleted Publisher.
func CreateValidPublisherDeleted() *entity.Publisher {
	now := time.Now().UTC()
	return NewPublisherBuilder().
		WithDeletedAt(&now).
		Build()
}

// CreateValidSchedule creates a valid Schedule with all required fields.
func CreateValidSchedule() *entity.Schedule {
	return NewScheduleBuilder().Build()
}

// CreateValidScheduleWithWeekday creates a valid Schedule recurring on the given weekday.
func CreateValidScheduleWithWeekday(weekday int) *entity.Schedule {
	return NewScheduleBuilder().WithWeekday(weekday).Build()
}

// CreateValidScheduleWithQuotas creates a Schedule with an explicit demographic quota.
func CreateValidScheduleWithQuotas(numPublishers, numShiftManagers, numBrothers, numSisters int) *entity.Schedule {
	return NewScheduleBuilder().
		WithQuotas(numPublishers, numShiftManagers, numBrothers, numSisters).
		Build()
}

// CreateValidAbsence creates a valid Absence covering a week starting today.
func CreateValidAbsence() *entity.Absence {
	return NewAbsenceBuilder().Build()
}

// CreateValidAbsenceForPublisher creates a valid Absence for a specific publisher.
func CreateValidAbsenceForPublisher(publisherID entity.PublisherID) *entity.Absence {
	return NewAbsenceBuilder().WithPublisherID(publisherID).Build()
}

// CreateValidAbsenceOnDay creates an Absence that covers exactly one civil day.
func CreateValidAbsenceOnDay(day time.Time) *entity.Absence {
	return NewAbsenceBuilder().WithRange(day, day).Build()
}

// CreateValidRelationship creates a valid Mandatory Relationship between two publishers.
func CreateValidRelationship() *entity.Relationship {
	return NewRelationshipBuilder().Build()
}

// CreateValidRelationshipWithKind creates a valid Relationship of a specific kind.
func CreateValidRelationshipWithKind(kind entity.RelationshipKind) *entity.Relationship {
	return NewRelationshipBuilder().WithKind(kind).Build()
}

// CreateValidShift creates a valid Shift with no publishers assigned.
func CreateValidShift() *entity.Shift {
	return NewShiftBuilder().Build()
}

// CreateValidShiftWithPublishers creates a valid Shift assigned to the given publishers.
func CreateValidShiftWithPublishers(publishers ...entity.PublisherID) *entity.Shift {
	return NewShiftBuilder().WithPublishers(publishers...).Build()
}

// CreateValidShiftWithWarning creates a valid Shift carrying an unmet-constraint warning.
func CreateValidShiftWithWarning(warning string) *entity.Shift {
	return NewShiftBuilder().WithWarning(warning).Build()
}

// BulkCreateValidPublishers creates count valid Publisher entities with
// sequential ids and alternating gender.
func BulkCreateValidPublishers(count int) []*entity.Publisher {
	publishers := make([]*entity.Publisher, count)
	for i := 0; i < count; i++ {
		gender := entity.GenderMale
		if i%2 == 1 {
			gender = entity.GenderFemale
		}
		publishers[i] = NewPublisherBuilder().
			WithID(entity.PublisherID(i + 1)).
			WithGender(gender).
			Build()
	}
	return publishers
}

// BulkCreateValidSchedules creates count valid Schedule entities, one per
// weekday starting Monday, wrapping around after 7.
func BulkCreateValidSchedules(count int) []*entity.Schedule {
	schedules := make([]*entity.Schedule, count)
	for i := 0; i < count; i++ {
		weekday := (i % 7) + 1
		schedules[i] = NewScheduleBuilder().
			WithID(entity.ScheduleID(i + 1)).
			WithWeekday(weekday).
			Build()
	}
	return schedules
}
