package postgres

import (
	"context"
	"fmt"

	"github.com/jsvoboda/rollcall/internal/database"
)

// AttendanceRepository provides PostgreSQL-backed storage for attendance
// events recorded on successful matches.
type AttendanceRepository struct {
	pool *Pool
}

// NewAttendanceRepository creates a new PostgreSQL attendance repository.
func NewAttendanceRepository(pool *Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Record stores a single attendance event.
func (r *AttendanceRepository) Record(ctx context.Context, event database.AttendanceEvent) error {
	query := `
		INSERT INTO attendance_log (id, student_id, student_name, confidence, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID, event.StudentID, event.StudentName, event.Confidence, event.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attendance event: %w", err)
	}
	return nil
}

// List returns the most recent attendance events, newest first.
func (r *AttendanceRepository) List(ctx context.Context, limit int) ([]database.AttendanceEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, student_id, student_name, confidence, recorded_at
		FROM attendance_log
		ORDER BY recorded_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query attendance log: %w", err)
	}
	defer rows.Close()

	var events []database.AttendanceEvent
	for rows.Next() {
		var event database.AttendanceEvent
		err := rows.Scan(
			&event.ID, &event.StudentID, &event.StudentName,
			&event.Confidence, &event.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance events: %w", err)
	}
	return events, nil
}
