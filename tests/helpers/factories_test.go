package helpers

import (
	"testing"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
)

// TestCreateValidPublisher verifies factory creates a valid Publisher
func TestCreateValidPublisher(t *testing.T) {
	publisher := CreateValidPublisher()

	if publisher.ID == 0 {
		t.Error("expected publisher ID to be set")
	}
	if publisher.FirstName == "" || publisher.LastName == "" {
		t.Error("expected name to be set")
	}
	if err := entity.ValidatePublisher(publisher); err != nil {
		t.Errorf("expected valid publisher, got %v", err)
	}
}

// TestCreateValidPublisherWithGender verifies factory sets custom gender
func TestCreateValidPublisherWithGender(t *testing.T) {
	publisher := CreateValidPublisherWithGender(entity.GenderFemale)

	if publisher.Gender != entity.GenderFemale {
		t.Error("expected custom gender")
	}
}

// TestCreateValidShiftManager verifies factory creates a male shift manager
func TestCreateValidShiftManager(t *testing.T) {
	manager := CreateValidShiftManager()

	if !manager.IsShiftManager {
		t.Error("expected shift manager flag to be set")
	}
	if manager.Gender != entity.GenderMale {
		t.Error("expected shift manager to be male")
	}
	if err := entity.ValidatePublisher(manager); err != nil {
		t.Errorf("expected valid shift manager, got %v", err)
	}
}

// TestCreateValidPublisherDeleted verifies factory creates soft-deleted publisher
func TestCreateValidPublisherDeleted(t *testing.T) {
	publisher := CreateValidPublisherDeleted()

	if publisher.DeletedAt == nil {
		t.Error("expected DeletedAt to be set")
	}
	if !publisher.IsDeleted() {
		t.Error("expected publisher to be marked as deleted")
	}
}

// TestCreateValidSchedule verifies factory creates a valid Schedule
func TestCreateValidSchedule(t *testing.T) {
	schedule := CreateValidSchedule()

	if schedule.ID == 0 {
		t.Error("expected schedule ID to be set")
	}
	if err := entity.ValidateSchedule(schedule); err != nil {
		t.Errorf("expected valid schedule, got %v", err)
	}
}

// TestCreateValidScheduleWithWeekday verifies factory sets custom weekday
func TestCreateValidScheduleWithWeekday(t *testing.T) {
	schedule := CreateValidScheduleWithWeekday(3)

	if schedule.Weekday != 3 {
		t.Error("expected custom weekday")
	}
}

// TestCreateValidScheduleWithQuotas verifies factory sets demographic quotas
func TestCreateValidScheduleWithQuotas(t *testing.T) {
	schedule := CreateValidScheduleWithQuotas(5, 1, 3, 2)

	if schedule.NumPublishers != 5 || schedule.NumShiftManagers != 1 ||
		schedule.NumBrothers != 3 || schedule.NumSisters != 2 {
		t.Error("expected quota fields to match factory arguments")
	}
}

// TestCreateValidAbsence verifies factory creates a valid Absence
func TestCreateValidAbsence(t *testing.T) {
	absence := CreateValidAbsence()

	if absence.PublisherID == 0 {
		t.Error("expected publisher ID to be set")
	}
	if err := entity.ValidateAbsence(absence); err != nil {
		t.Errorf("expected valid absence, got %v", err)
	}
}

// TestCreateValidAbsenceForPublisher verifies factory sets the publisher ID
func TestCreateValidAbsenceForPublisher(t *testing.T) {
	absence := CreateValidAbsenceForPublisher(entity.PublisherID(99))

	if absence.PublisherID != 99 {
		t.Error("expected custom publisher ID")
	}
}

// TestCreateValidAbsenceOnDay verifies factory creates a single-day absence
func TestCreateValidAbsenceOnDay(t *testing.T) {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	absence := CreateValidAbsenceOnDay(day)

	if !absence.Contains(day) {
		t.Error("expected absence to contain the given day")
	}
}

// TestCreateValidRelationship verifies factory creates a valid Relationship
func TestCreateValidRelationship(t *testing.T) {
	rel := CreateValidRelationship()

	if rel.A == rel.B {
		t.Error("expected distinct publishers in relationship")
	}
	if err := entity.ValidateRelationship(rel); err != nil {
		t.Errorf("expected valid relationship, got %v", err)
	}
}

// TestCreateValidRelationshipWithKind verifies factory sets relationship kind
func TestCreateValidRelationshipWithKind(t *testing.T) {
	rel := CreateValidRelationshipWithKind(entity.RelationshipRecommended)

	if rel.Kind != entity.RelationshipRecommended {
		t.Error("expected custom relationship kind")
	}
}

// TestCreateValidShift verifies factory creates a valid Shift
func TestCreateValidShift(t *testing.T) {
	shift := CreateValidShift()

	if shift.ID == 0 {
		t.Error("expected shift ID to be set")
	}
	if shift.HasWarning() {
		t.Error("expected no warning by default")
	}
}

// TestCreateValidShiftWithPublishers verifies factory assigns publishers
func TestCreateValidShiftWithPublishers(t *testing.T) {
	shift := CreateValidShiftWithPublishers(1, 2)

	if len(shift.Publishers) != 2 {
		t.Error("expected two assigned publishers")
	}
}

// TestCreateValidShiftWithWarning verifies factory sets warning text
func TestCreateValidShiftWithWarning(t *testing.T) {
	shift := CreateValidShiftWithWarning("quota unmet")

	if !shift.HasWarning() {
		t.Error("expected shift to carry a warning")
	}
}

// TestBulkCreateValidPublishers verifies bulk factory creates distinct, valid publishers
func TestBulkCreateValidPublishers(t *testing.T) {
	count := 10
	publishers := BulkCreateValidPublishers(count)

	if len(publishers) != count {
		t.Errorf("expected %d publishers, got %d", count, len(publishers))
	}

	idMap := make(map[entity.PublisherID]bool)
	for i, publisher := range publishers {
		if publisher.ID == 0 {
			t.Errorf("publisher %d: expected ID to be set", i)
		}
		if idMap[publisher.ID] {
			t.Error("expected all publisher IDs to be unique")
		}
		idMap[publisher.ID] = true
	}

	genderCount := map[entity.Gender]int{}
	for _, publisher := range publishers {
		genderCount[publisher.Gender]++
	}
	if genderCount[entity.GenderMale] == 0 || genderCount[entity.GenderFemale] == 0 {
		t.Error("expected genders to be distributed across bulk publishers")
	}
}

// TestBulkCreateValidSchedules verifies bulk factory creates distinct, valid schedules
func TestBulkCreateValidSchedules(t *testing.T) {
	count := 9
	schedules := BulkCreateValidSchedules(count)

	if len(schedules) != count {
		t.Errorf("expected %d schedules, got %d", count, len(schedules))
	}

	for i, schedule := range schedules {
		if schedule.ID == 0 {
			t.Errorf("schedule %d: expected ID to be set", i)
		}
		if schedule.Weekday < 1 || schedule.Weekday > 7 {
			t.Errorf("schedule %d: expected weekday in [1,7], got %d", i, schedule.Weekday)
		}
	}
}

// BenchmarkFactory_Publisher benchmarks Publisher factory
func BenchmarkFactory_Publisher(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CreateValidPublisher()
	}
}

// BenchmarkFactory_Shift benchmarks Shift factory
func BenchmarkFactory_Shift(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CreateValidShift()
	}
}

// BenchmarkFactory_BulkPublishers benchmarks bulk Publisher creation
func BenchmarkFactory_BulkPublishers(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = BulkCreateValidPublishers(10)
	}
}
