package database

import (
	"time"
)

// Student represents an enrolled student with their face descriptor.
// Records are write-once: created at enrollment, never updated or deleted.
type Student struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Class          string    `json:"class"`
	Enrolled       bool      `json:"enrolled"`
	Descriptor     []float32 `json:"descriptor"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// AttendanceEvent is a record of a successful attendance match.
type AttendanceEvent struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Confidence  float64   `json:"confidence"`
	RecordedAt  time.Time `json:"recordedAt"`
}
