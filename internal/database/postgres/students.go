package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsvoboda/rollcall/internal/database"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations, used to detect duplicate enrollments.
const uniqueViolation = "23505"

// StudentRepository provides PostgreSQL-backed student storage.
type StudentRepository struct {
	pool *Pool
}

// NewStudentRepository creates a new PostgreSQL student repository.
func NewStudentRepository(pool *Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = "id, name, email, class, enrolled, descriptor, enrollment_date"

// Insert stores a new student record. A primary key conflict is reported as
// database.ErrDuplicateID; under concurrent enrollment of the same id exactly
// one insert wins.
func (r *StudentRepository) Insert(ctx context.Context, student database.Student) error {
	query := `
		INSERT INTO students (id, name, email, class, enrolled, descriptor, enrollment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		student.ID, student.Name, student.Email, student.Class,
		student.Enrolled, pgvector.NewVector(student.Descriptor), student.EnrollmentDate,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return database.ErrDuplicateID
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// Get retrieves a student by id. Returns nil if not found.
func (r *StudentRepository) Get(ctx context.Context, id string) (*database.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE id = $1"

	student, err := scanStudent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query student: %w", err)
	}
	return student, nil
}

// ListAll returns all students ordered by id.
func (r *StudentRepository) ListAll(ctx context.Context) ([]database.Student, error) {
	query := "SELECT " + studentColumns + " FROM students ORDER BY id"
	return r.queryStudents(ctx, query)
}

// ListEnrolled returns enrolled students with descriptors, ordered by id.
// The explicit ordering keeps nearest-neighbor tie-breaking deterministic.
func (r *StudentRepository) ListEnrolled(ctx context.Context) ([]database.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE enrolled = TRUE ORDER BY id"
	return r.queryStudents(ctx, query)
}

// Count returns the total number of student records.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...any) ([]database.Student, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []database.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

// rowScanner abstracts over sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*database.Student, error) {
	var student database.Student
	var descriptor pgvector.Vector

	err := row.Scan(
		&student.ID, &student.Name, &student.Email, &student.Class,
		&student.Enrolled, &descriptor, &student.EnrollmentDate,
	)
	if err != nil {
		return nil, err
	}

	student.Descriptor = descriptor.Slice()
	return &student, nil
}
