package cmd

import (
	"errors"
	"fmt"

	"github.com/jsvoboda/rollcall/internal/attendance"
	"github.com/jsvoboda/rollcall/internal/config"
	"github.com/jsvoboda/rollcall/internal/database/postgres"
	"github.com/jsvoboda/rollcall/internal/facedetect"
)

// backend bundles the collaborators CLI commands need. Constructed per
// command invocation; Close releases the database pool.
type backend struct {
	cfg      *config.Config
	pool     *postgres.Pool
	students *postgres.StudentRepository
	log      *postgres.AttendanceRepository
	detector *facedetect.Client
	service  *attendance.Service
}

// newBackend loads config, connects to PostgreSQL (running migrations) and
// wires the attendance service.
func newBackend() (*backend, error) {
	cfg := config.Load()
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}

	students := postgres.NewStudentRepository(pool)
	detector := facedetect.NewClient(cfg.FaceAPI.URL, cfg.FaceAPI.Timeout)
	service := attendance.NewService(students, detector, cfg.Match.Threshold, cfg.FaceAPI.Dim)

	return &backend{
		cfg:      cfg,
		pool:     pool,
		students: students,
		log:      postgres.NewAttendanceRepository(pool),
		detector: detector,
		service:  service,
	}, nil
}

// withThreshold rebuilds the service with an overridden match threshold.
func (b *backend) withThreshold(threshold float64) {
	b.service = attendance.NewService(b.students, b.detector, threshold, b.cfg.FaceAPI.Dim)
}

// Close releases the database pool.
func (b *backend) Close() {
	if err := b.pool.Close(); err != nil {
		fmt.Printf("Warning: closing database: %v\n", err)
	}
}
