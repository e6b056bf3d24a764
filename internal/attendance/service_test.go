package attendance

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/jsvoboda/rollcall/internal/database"
	"github.com/jsvoboda/rollcall/internal/database/mock"
	"github.com/jsvoboda/rollcall/internal/facedetect"
)

// stubDetector returns a fixed descriptor, or an injected error.
type stubDetector struct {
	descriptor []float32
	err        error
}

func (s *stubDetector) DetectFace(ctx context.Context, imageData []byte) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.descriptor, nil
}

// testPhoto encodes a small valid PNG.
func testPhoto(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("failed to encode test photo: %v", err)
	}
	return buf.Bytes()
}

func TestService_Enroll_Success(t *testing.T) {
	repo := mock.NewStudentRepository()
	svc := NewService(repo, &stubDetector{descriptor: descriptor()}, 0, 128)

	student, err := svc.Enroll(context.Background(), EnrollRequest{
		ID:    "S1",
		Name:  "Alice",
		Email: "alice@example.com",
		Class: "4A",
		Photo: testPhoto(t),
	})
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if !student.Enrolled {
		t.Error("expected student to be marked enrolled")
	}
	if len(student.Descriptor) != 128 {
		t.Errorf("expected 128-dim descriptor, got %d", len(student.Descriptor))
	}

	stored, err := repo.Get(context.Background(), "S1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored == nil {
		t.Fatal("expected student to be persisted")
	}
	if stored.Name != "Alice" {
		t.Errorf("expected name Alice, got %s", stored.Name)
	}
}

func TestService_Enroll_MissingID(t *testing.T) {
	repo := mock.NewStudentRepository()
	svc := NewService(repo, &stubDetector{descriptor: descriptor()}, 0, 128)

	_, err := svc.Enroll(context.Background(), EnrollRequest{Photo: testPhoto(t)})
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
}

func TestService_Enroll_DuplicateID(t *testing.T) {
	repo := mock.NewStudentRepository()
	svc := NewService(repo, &stubDetector{descriptor: descriptor()}, 0, 128)

	req := EnrollRequest{ID: "S1", Name: "Alice", Photo: testPhoto(t)}
	if _, err := svc.Enroll(context.Background(), req); err != nil {
		t.Fatalf("first Enroll failed: %v", err)
	}

	_, err := svc.Enroll(context.Background(), req)
	if !errors.Is(err, database.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	count, _ := repo.Count(context.Background())
	if count != 1 {
		t.Errorf("expected exactly one record, got %d", count)
	}
}

func TestService_Enroll_NoFaceDetected(t *testing.T) {
	repo := mock.NewStudentRepository()
	svc := NewService(repo, &stubDetector{err: facedetect.ErrNoFaceDetected}, 0, 128)

	_, err := svc.Enroll(context.Background(), EnrollRequest{ID: "S1", Photo: testPhoto(t)})
	if !errors.Is(err, facedetect.ErrNoFaceDetected) {
		t.Errorf("expected ErrNoFaceDetected, got %v", err)
	}

	count, _ := repo.Count(context.Background())
	if count != 0 {
		t.Errorf("expected no record on failure, got %d", count)
	}
}

func TestService_Enroll_InvalidImage(t *testing.T) {
	repo := mock.NewStudentRepository()
	svc := NewService(repo, &stubDetector{descriptor: descriptor()}, 0, 128)

	_, err := svc.Enroll(context.Background(), EnrollRequest{ID: "S1", Photo: []byte("not an image")})
	if err == nil {
		t.Fatal("expected error for invalid image")
	}

	count, _ := repo.Count(context.Background())
	if count != 0 {
		t.Errorf("expected no record on failure, got %d", count)
	}
}

func TestService_Enroll_DimensionMismatch(t *testing.T) {
	repo := mock.NewStudentRepository()
	svc := NewService(repo, &stubDetector{descriptor: make([]float32, 64)}, 0, 128)

	_, err := svc.Enroll(context.Background(), EnrollRequest{ID: "S1", Photo: testPhoto(t)})
	if err == nil {
		t.Fatal("expected error for descriptor dimension mismatch")
	}
}

func TestService_Match_Success(t *testing.T) {
	repo := mock.NewStudentRepository()
	repo.Add(database.Student{ID: "S1", Name: "Alice", Enrolled: true, Descriptor: descriptor()})
	svc := NewService(repo, &stubDetector{descriptor: descriptor()}, 0, 128)

	match, err := svc.Match(context.Background(), testPhoto(t))
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if match.StudentID != "S1" || match.StudentName != "Alice" {
		t.Errorf("unexpected match: %+v", match)
	}
	if match.Confidence != 100 {
		t.Errorf("expected confidence 100, got %f", match.Confidence)
	}
}

func TestService_Match_EmptyEnrolledSet(t *testing.T) {
	repo := mock.NewStudentRepository()
	svc := NewService(repo, &stubDetector{descriptor: descriptor()}, 0, 128)

	_, err := svc.Match(context.Background(), testPhoto(t))
	if !errors.Is(err, ErrNoMatchFound) {
		t.Errorf("expected ErrNoMatchFound, got %v", err)
	}
}

func TestService_Match_NoCandidateWithinThreshold(t *testing.T) {
	repo := mock.NewStudentRepository()
	repo.Add(database.Student{ID: "S1", Name: "Alice", Enrolled: true, Descriptor: descriptor()})
	svc := NewService(repo, &stubDetector{descriptor: descriptor(0.61)}, 0, 128)

	_, err := svc.Match(context.Background(), testPhoto(t))
	if !errors.Is(err, ErrNoMatchFound) {
		t.Errorf("expected ErrNoMatchFound, got %v", err)
	}
}

func TestService_Match_StorageError(t *testing.T) {
	repo := mock.NewStudentRepository()
	repo.ListEnrolledError = errors.New("connection refused")
	svc := NewService(repo, &stubDetector{descriptor: descriptor()}, 0, 128)

	_, err := svc.Match(context.Background(), testPhoto(t))
	if err == nil || errors.Is(err, ErrNoMatchFound) {
		t.Errorf("expected storage error distinct from ErrNoMatchFound, got %v", err)
	}
}
