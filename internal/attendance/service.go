// Package attendance implements the two core operations of the service:
// enrolling a student from a photo and matching a live photo against the
// enrolled descriptors.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jsvoboda/rollcall/internal/database"
	"github.com/jsvoboda/rollcall/internal/facedetect"
	"github.com/jsvoboda/rollcall/internal/imaging"
)

// ErrNoMatchFound is the business outcome when no enrolled descriptor is
// within the match threshold. It is not a systemic error.
var ErrNoMatchFound = errors.New("no matching student found")

// ErrMissingID is returned when an enrollment request has an empty id.
var ErrMissingID = errors.New("student id is required")

// maxPhotoSize is the maximum dimension for photos sent to the descriptor
// service; larger uploads are scaled down first.
const maxPhotoSize = 1920

// Service wires the descriptor provider and the student store together.
// Constructed once at process start and passed to handlers explicitly.
type Service struct {
	students  database.StudentRepository
	detector  facedetect.Detector
	threshold float64
	dim       int
}

// NewService creates the attendance service. threshold <= 0 falls back to
// DefaultThreshold; dim 0 disables the descriptor dimension check.
func NewService(students database.StudentRepository, detector facedetect.Detector, threshold float64, dim int) *Service {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Service{
		students:  students,
		detector:  detector,
		threshold: threshold,
		dim:       dim,
	}
}

// EnrollRequest carries the student metadata and photo for enrollment.
type EnrollRequest struct {
	ID    string
	Name  string
	Email string
	Class string
	Photo []byte
}

// Enroll captures a face descriptor from the photo and persists a new student
// record. Exactly one record is created on success; no record is created on
// any failure path.
func (s *Service) Enroll(ctx context.Context, req EnrollRequest) (*database.Student, error) {
	if req.ID == "" {
		return nil, ErrMissingID
	}

	descriptor, err := s.computeDescriptor(ctx, req.Photo)
	if err != nil {
		return nil, err
	}

	student := database.Student{
		ID:             req.ID,
		Name:           req.Name,
		Email:          req.Email,
		Class:          req.Class,
		Enrolled:       true,
		Descriptor:     descriptor,
		EnrollmentDate: time.Now().UTC(),
	}

	if err := s.students.Insert(ctx, student); err != nil {
		if errors.Is(err, database.ErrDuplicateID) {
			return nil, err
		}
		return nil, fmt.Errorf("storing student: %w", err)
	}
	return &student, nil
}

// Match finds the enrolled student whose descriptor is nearest to the face in
// the photo, within the threshold. Pure read + compute: no state is mutated.
func (s *Service) Match(ctx context.Context, photo []byte) (Match, error) {
	descriptor, err := s.computeDescriptor(ctx, photo)
	if err != nil {
		return Match{}, err
	}

	// Full scan of the enrolled set, ordered by id. This is the system's one
	// known scalability limit, acceptable for roster-sized populations.
	candidates, err := s.students.ListEnrolled(ctx)
	if err != nil {
		return Match{}, fmt.Errorf("listing enrolled students: %w", err)
	}

	match, ok := NearestMatch(descriptor, candidates, s.threshold)
	if !ok {
		return Match{}, ErrNoMatchFound
	}
	return match, nil
}

// Threshold returns the configured match threshold.
func (s *Service) Threshold() float64 {
	return s.threshold
}

// computeDescriptor validates and normalizes the photo, then asks the
// descriptor service for the face descriptor.
func (s *Service) computeDescriptor(ctx context.Context, photo []byte) ([]float32, error) {
	if err := imaging.Validate(photo); err != nil {
		return nil, err
	}

	normalized, err := imaging.Resize(photo, maxPhotoSize)
	if err != nil {
		return nil, err
	}

	descriptor, err := s.detector.DetectFace(ctx, normalized)
	if err != nil {
		if errors.Is(err, facedetect.ErrNoFaceDetected) {
			return nil, err
		}
		return nil, fmt.Errorf("computing face descriptor: %w", err)
	}

	if s.dim > 0 && len(descriptor) != s.dim {
		return nil, fmt.Errorf("descriptor dimension mismatch: got %d, want %d", len(descriptor), s.dim)
	}
	return descriptor, nil
}
