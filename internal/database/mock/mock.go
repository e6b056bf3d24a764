// Package mock provides in-memory implementations of database interfaces
// for testing.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/jsvoboda/rollcall/internal/database"
)

// StudentRepository is an in-memory implementation of
// database.StudentRepository.
type StudentRepository struct {
	mu       sync.RWMutex
	students map[string]database.Student

	// Error injection
	InsertError       error
	GetError          error
	ListAllError      error
	ListEnrolledError error
	CountError        error
}

// NewStudentRepository creates a new mock student repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		students: make(map[string]database.Student),
	}
}

// Add seeds a student without going through Insert error injection.
func (m *StudentRepository) Add(student database.Student) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[student.ID] = student
}

// Insert stores a new student, enforcing id uniqueness like the real store.
func (m *StudentRepository) Insert(ctx context.Context, student database.Student) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[student.ID]; ok {
		return database.ErrDuplicateID
	}
	m.students[student.ID] = student
	return nil
}

// Get retrieves a student by id, nil if not found.
func (m *StudentRepository) Get(ctx context.Context, id string) (*database.Student, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if student, ok := m.students[id]; ok {
		return &student, nil
	}
	return nil, nil
}

// ListAll returns all students ordered by id.
func (m *StudentRepository) ListAll(ctx context.Context) ([]database.Student, error) {
	if m.ListAllError != nil {
		return nil, m.ListAllError
	}
	return m.sortedStudents(func(database.Student) bool { return true }), nil
}

// ListEnrolled returns enrolled students with descriptors, ordered by id.
func (m *StudentRepository) ListEnrolled(ctx context.Context) ([]database.Student, error) {
	if m.ListEnrolledError != nil {
		return nil, m.ListEnrolledError
	}
	return m.sortedStudents(func(s database.Student) bool {
		return s.Enrolled && len(s.Descriptor) > 0
	}), nil
}

// Count returns the number of stored students.
func (m *StudentRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.students), nil
}

func (m *StudentRepository) sortedStudents(keep func(database.Student) bool) []database.Student {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]database.Student, 0, len(m.students))
	for _, s := range m.students {
		if keep(s) {
			students = append(students, s)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

// AttendanceRepository is an in-memory implementation of
// database.AttendanceRepository.
type AttendanceRepository struct {
	mu     sync.RWMutex
	events []database.AttendanceEvent

	// Error injection
	RecordError error
	ListError   error
}

// NewAttendanceRepository creates a new mock attendance repository.
func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{}
}

// Record stores a single attendance event.
func (m *AttendanceRepository) Record(ctx context.Context, event database.AttendanceEvent) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// List returns recorded events, newest first.
func (m *AttendanceRepository) List(ctx context.Context, limit int) ([]database.AttendanceEvent, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]database.AttendanceEvent, len(m.events))
	copy(events, m.events)
	sort.Slice(events, func(i, j int) bool { return events[i].RecordedAt.After(events[j].RecordedAt) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Events returns all recorded events in insertion order, for assertions.
func (m *AttendanceRepository) Events() []database.AttendanceEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]database.AttendanceEvent, len(m.events))
	copy(events, m.events)
	return events
}
