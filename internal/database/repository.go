package database

import (
	"context"
	"errors"
)

// ErrDuplicateID is returned by Insert when a student with the same id
// already exists. The uniqueness guarantee comes from the storage layer
// (primary key), so concurrent enrollments of the same id yield exactly
// one success.
var ErrDuplicateID = errors.New("student id already enrolled")

// StudentReader provides read-only access to student records
type StudentReader interface {
	// Get retrieves a student by id, returns nil if not found
	Get(ctx context.Context, id string) (*Student, error)
	// ListAll returns all students ordered by id
	ListAll(ctx context.Context) ([]Student, error)
	// ListEnrolled returns all enrolled students with descriptors, ordered by id.
	// The ordering is part of the matching contract: it makes tie-breaking
	// in the nearest-neighbor scan deterministic (smallest id wins).
	ListEnrolled(ctx context.Context) ([]Student, error)
	// Count returns the total number of student records
	Count(ctx context.Context) (int, error)
}

// StudentRepository provides full access to student records
type StudentRepository interface {
	StudentReader

	// Insert stores a new student record. Returns ErrDuplicateID when the
	// id is already taken.
	Insert(ctx context.Context, student Student) error
}

// AttendanceRepository stores attendance events recorded on successful matches
type AttendanceRepository interface {
	// Record stores a single attendance event
	Record(ctx context.Context, event AttendanceEvent) error
	// List returns the most recent attendance events, newest first
	List(ctx context.Context, limit int) ([]AttendanceEvent, error)
}
