// Package mocks provides in-memory test doubles for the repository
// interfaces, with the ability to inject errors for failure-path
// handler and engine tests that the plain memory.Store cannot easily
// exercise.
package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
)

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// MockPublisherRepository is a mock implementation of repository.PublisherRepository.
type MockPublisherRepository struct {
	mu         sync.RWMutex
	publishers map[entity.PublisherID]*entity.Publisher
	getErr     error
	saveErr    error
}

// NewMockPublisherRepository creates a new mock publisher repository.
func NewMockPublisherRepository() *MockPublisherRepository {
	return &MockPublisherRepository{
		publishers: make(map[entity.PublisherID]*entity.Publisher),
	}
}

func (m *MockPublisherRepository) Create(ctx context.Context, p *entity.Publisher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.publishers[p.ID] = p
	return nil
}

func (m *MockPublisherRepository) GetByID(ctx context.Context, id entity.PublisherID) (*entity.Publisher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.publishers[id]; ok {
		return p, nil
	}
	return nil, &repository.NotFoundError{ResourceType: "publisher", ResourceID: idString(int64(id))}
}

func (m *MockPublisherRepository) List(ctx context.Context) ([]*entity.Publisher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*entity.Publisher
	for _, p := range m.publishers {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockPublisherRepository) Update(ctx context.Context, p *entity.Publisher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.publishers[p.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "publisher", ResourceID: idString(int64(p.ID))}
	}
	m.publishers[p.ID] = p
	return nil
}

func (m *MockPublisherRepository) Delete(ctx context.Context, id entity.PublisherID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.publishers[id]; !ok {
		return &repository.NotFoundError{ResourceType: "publisher", ResourceID: idString(int64(id))}
	}
	delete(m.publishers, id)
	return nil
}

func (m *MockPublisherRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return 0, m.getErr
	}
	return int64(len(m.publishers)), nil
}

// SetGetError sets the error to return from read operations.
func (m *MockPublisherRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from write operations.
func (m *MockPublisherRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Len returns the number of stored publishers (test helper, not part
// of the repository contract).
func (m *MockPublisherRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.publishers)
}

// MockScheduleRepository is a mock implementation of repository.ScheduleRepository.
type MockScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[entity.ScheduleID]*entity.Schedule
	getErr    error
	saveErr   error
}

// NewMockScheduleRepository creates a new mock schedule repository.
func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{
		schedules: make(map[entity.ScheduleID]*entity.Schedule),
	}
}

func (m *MockScheduleRepository) Create(ctx context.Context, s *entity.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.schedules[s.ID] = s
	return nil
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id entity.ScheduleID) (*entity.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, &repository.NotFoundError{ResourceType: "schedule", ResourceID: idString(int64(id))}
}

func (m *MockScheduleRepository) List(ctx context.Context) ([]*entity.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*entity.Schedule
	for _, s := range m.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (m *MockScheduleRepository) ListByWeekday(ctx context.Context, weekday int) ([]*entity.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*entity.Schedule
	for _, s := range m.schedules {
		if s.Weekday == weekday {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockScheduleRepository) Update(ctx context.Context, s *entity.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.schedules[s.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "schedule", ResourceID: idString(int64(s.ID))}
	}
	m.schedules[s.ID] = s
	return nil
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id entity.ScheduleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.schedules[id]; !ok {
		return &repository.NotFoundError{ResourceType: "schedule", ResourceID: idString(int64(id))}
	}
	delete(m.schedules, id)
	return nil
}

func (m *MockScheduleRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return 0, m.getErr
	}
	return int64(len(m.schedules)), nil
}

// SetGetError sets the error to return from read operations.
func (m *MockScheduleRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from write operations.
func (m *MockScheduleRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// MockAbsenceRepository is a mock implementation of repository.AbsenceRepository.
type MockAbsenceRepository struct {
	mu       sync.RWMutex
	absences map[int64]*entity.Absence
	nextID   int64
	getErr   error
	saveErr  error
}

// NewMockAbsenceRepository creates a new mock absence repository.
func NewMockAbsenceRepository() *MockAbsenceRepository {
	return &MockAbsenceRepository{absences: make(map[int64]*entity.Absence)}
}

func (m *MockAbsenceRepository) Create(ctx context.Context, a *entity.Absence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if a.ID == 0 {
		m.nextID++
		a.ID = m.nextID
	}
	m.absences[a.ID] = a
	return nil
}

func (m *MockAbsenceRepository) ListByPublisher(ctx context.Context, publisherID entity.PublisherID) ([]*entity.Absence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*entity.Absence
	for _, a := range m.absences {
		if a.PublisherID == publisherID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAbsenceRepository) IsAbsentOn(ctx context.Context, publisherID entity.PublisherID, day time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	for _, a := range m.absences {
		if a.PublisherID == publisherID && a.Contains(day) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAbsenceRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.absences[id]; !ok {
		return &repository.NotFoundError{ResourceType: "absence", ResourceID: idString(id)}
	}
	delete(m.absences, id)
	return nil
}

// SetGetError sets the error to return from read operations.
func (m *MockAbsenceRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from write operations.
func (m *MockAbsenceRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// MockAvailabilityRepository is a mock implementation of repository.AvailabilityRepository.
type MockAvailabilityRepository struct {
	mu    sync.RWMutex
	pairs map[entity.PublisherID]map[entity.ScheduleID]struct{}
	err   error
}

type availabilityPair struct {
	publisherID entity.PublisherID
	scheduleID  entity.ScheduleID
}

// NewMockAvailabilityRepository creates a new mock availability repository.
func NewMockAvailabilityRepository() *MockAvailabilityRepository {
	return &MockAvailabilityRepository{pairs: make(map[entity.PublisherID]map[entity.ScheduleID]struct{})}
}

func (m *MockAvailabilityRepository) Set(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.pairs[publisherID] == nil {
		m.pairs[publisherID] = make(map[entity.ScheduleID]struct{})
	}
	m.pairs[publisherID][scheduleID] = struct{}{}
	return nil
}

func (m *MockAvailabilityRepository) Unset(ctx context.Context, publisherID entity.PublisherID, scheduleID entity.ScheduleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.pairs[publisherID], scheduleID)
	return nil
}

func (m *MockAvailabilityRepository) ListPublishersForSchedule(ctx context.Context, scheduleID entity.ScheduleID) ([]entity.PublisherID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []entity.PublisherID
	for publisherID, schedules := range m.pairs {
		if _, ok := schedules[scheduleID]; ok {
			out = append(out, publisherID)
		}
	}
	return out, nil
}

func (m *MockAvailabilityRepository) ListSchedulesForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.ScheduleID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []entity.ScheduleID
	for scheduleID := range m.pairs[publisherID] {
		out = append(out, scheduleID)
	}
	return out, nil
}

// SetError sets the error to return from every operation.
func (m *MockAvailabilityRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// MockRelationshipRepository is a mock implementation of repository.RelationshipRepository.
type MockRelationshipRepository struct {
	mu            sync.RWMutex
	relationships map[int64]*entity.Relationship
	nextID        int64
	err           error
}

// NewMockRelationshipRepository creates a new mock relationship repository.
func NewMockRelationshipRepository() *MockRelationshipRepository {
	return &MockRelationshipRepository{relationships: make(map[int64]*entity.Relationship)}
}

func (m *MockRelationshipRepository) Create(ctx context.Context, r *entity.Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	a, b := entity.CanonicalPair(r.A, r.B)
	for _, existing := range m.relationships {
		ea, eb := entity.CanonicalPair(existing.A, existing.B)
		if ea == a && eb == b {
			return entity.ErrDuplicateRelationship
		}
	}
	if r.ID == 0 {
		m.nextID++
		r.ID = m.nextID
	}
	m.relationships[r.ID] = r
	return nil
}

func (m *MockRelationshipRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.relationships[id]; !ok {
		return &repository.NotFoundError{ResourceType: "relationship", ResourceID: idString(id)}
	}
	delete(m.relationships, id)
	return nil
}

func (m *MockRelationshipRepository) ListForPublisher(ctx context.Context, publisherID entity.PublisherID) ([]entity.RelationshipEdge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []entity.RelationshipEdge
	for _, r := range m.relationships {
		switch publisherID {
		case r.A:
			out = append(out, entity.RelationshipEdge{Other: r.B, Kind: r.Kind})
		case r.B:
			out = append(out, entity.RelationshipEdge{Other: r.A, Kind: r.Kind})
		}
	}
	return out, nil
}

// SetError sets the error to return from every operation.
func (m *MockRelationshipRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// MockShiftRepository is a mock implementation of repository.ShiftRepository.
type MockShiftRepository struct {
	mu      sync.RWMutex
	shifts  map[entity.ShiftID]*entity.Shift
	nextID  int64
	getErr  error
	saveErr error
}

// NewMockShiftRepository creates a new mock shift repository.
func NewMockShiftRepository() *MockShiftRepository {
	return &MockShiftRepository{shifts: make(map[entity.ShiftID]*entity.Shift)}
}

func (m *MockShiftRepository) Create(ctx context.Context, s *entity.Shift) (entity.ShiftID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.nextID++
	s.ID = entity.ShiftID(m.nextID)
	m.shifts[s.ID] = s
	return s.ID, nil
}

func (m *MockShiftRepository) GetByLocationAndWindow(ctx context.Context, location string, start, end time.Time) (*entity.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, s := range m.shifts {
		if s.Location == location && s.StartDatetime.Equal(start) && s.EndDatetime.Equal(end) {
			return s, nil
		}
	}
	return nil, &repository.NotFoundError{ResourceType: "shift", ResourceID: location}
}

func (m *MockShiftRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*entity.Shift
	for _, s := range m.shifts {
		if !s.StartDatetime.Before(start) && s.StartDatetime.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

// SetGetError sets the error to return from read operations.
func (m *MockShiftRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// SetSaveError sets the error to return from write operations.
func (m *MockShiftRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// MockDatabase aggregates the mock repositories behind repository.Database,
// for handler-level tests that want to inject a failure in exactly one
// sub-repository without standing up postgres or the full memory store.
type MockDatabase struct {
	Publishers    *MockPublisherRepository
	Schedules     *MockScheduleRepository
	Absences      *MockAbsenceRepository
	Availability  *MockAvailabilityRepository
	Relationships *MockRelationshipRepository
	Shifts        *MockShiftRepository
	healthErr     error
}

// NewMockDatabase creates a MockDatabase with all sub-repositories empty.
func NewMockDatabase() *MockDatabase {
	return &MockDatabase{
		Publishers:    NewMockPublisherRepository(),
		Schedules:     NewMockScheduleRepository(),
		Absences:      NewMockAbsenceRepository(),
		Availability:  NewMockAvailabilityRepository(),
		Relationships: NewMockRelationshipRepository(),
		Shifts:        NewMockShiftRepository(),
	}
}

func (d *MockDatabase) PublisherRepository() repository.PublisherRepository       { return d.Publishers }
func (d *MockDatabase) ScheduleRepository() repository.ScheduleRepository         { return d.Schedules }
func (d *MockDatabase) AbsenceRepository() repository.AbsenceRepository           { return d.Absences }
func (d *MockDatabase) AvailabilityRepository() repository.AvailabilityRepository { return d.Availability }
func (d *MockDatabase) RelationshipRepository() repository.RelationshipRepository { return d.Relationships }
func (d *MockDatabase) ShiftRepository() repository.ShiftRepository              { return d.Shifts }

func (d *MockDatabase) Close() error { return nil }

func (d *MockDatabase) Health(ctx context.Context) error { return d.healthErr }

// SetHealthError sets the error Health returns, for exercising the
// /api/health/db failure path.
func (d *MockDatabase) SetHealthError(err error) { d.healthErr = err }

// BeginTx returns a transaction that writes straight through to the
// same mock shift repository; tests that need a failing transaction
// should inject the failure via d.Shifts' SetSaveError instead.
func (d *MockDatabase) BeginTx(ctx context.Context) (repository.Transaction, error) {
	return &mockTransaction{shifts: d.Shifts}, nil
}

type mockTransaction struct {
	shifts *MockShiftRepository
}

func (t *mockTransaction) ShiftRepository() repository.ShiftRepository { return t.shifts }
func (t *mockTransaction) Commit() error                               { return nil }
func (t *mockTransaction) Rollback() error                             { return nil }
