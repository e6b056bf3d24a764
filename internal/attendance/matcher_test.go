package attendance

import (
	"fmt"
	"testing"

	"github.com/jsvoboda/rollcall/internal/database"
)

// descriptor builds a 128-dim descriptor with the given leading components.
func descriptor(leading ...float32) []float32 {
	d := make([]float32, 128)
	copy(d, leading)
	return d
}

func student(id, name string, desc []float32) database.Student {
	return database.Student{ID: id, Name: name, Enrolled: true, Descriptor: desc}
}

func TestNearestMatch_ExactMatch(t *testing.T) {
	candidates := []database.Student{
		student("S1", "Alice", descriptor()),
	}

	match, ok := NearestMatch(descriptor(), candidates, DefaultThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.StudentID != "S1" {
		t.Errorf("expected student S1, got %s", match.StudentID)
	}
	if got := fmt.Sprintf("%.2f", match.Confidence); got != "100.00" {
		t.Errorf("expected confidence 100.00, got %s", got)
	}
}

func TestNearestMatch_JustUnderThreshold(t *testing.T) {
	candidates := []database.Student{
		student("S1", "Alice", descriptor()),
	}

	// Query at distance 0.59 from S1: still a match, confidence 41.00.
	match, ok := NearestMatch(descriptor(0.59), candidates, DefaultThreshold)
	if !ok {
		t.Fatal("expected a match at distance 0.59")
	}
	if got := fmt.Sprintf("%.2f", match.Confidence); got != "41.00" {
		t.Errorf("expected confidence 41.00, got %s", got)
	}
}

func TestNearestMatch_AtThresholdBoundary(t *testing.T) {
	candidates := []database.Student{
		student("S1", "Alice", descriptor()),
	}

	// The boundary is exclusive: distance 0.6 is never a match.
	if _, ok := NearestMatch(descriptor(0.6), candidates, DefaultThreshold); ok {
		t.Error("expected no match at distance exactly 0.6")
	}
}

func TestNearestMatch_OverThreshold(t *testing.T) {
	candidates := []database.Student{
		student("S1", "Alice", descriptor()),
	}

	if _, ok := NearestMatch(descriptor(0.61), candidates, DefaultThreshold); ok {
		t.Error("expected no match at distance 0.61")
	}
}

func TestNearestMatch_EmptyCandidates(t *testing.T) {
	if _, ok := NearestMatch(descriptor(), nil, DefaultThreshold); ok {
		t.Error("expected no match against empty candidate set")
	}
}

func TestNearestMatch_PicksGlobalMinimum(t *testing.T) {
	candidates := []database.Student{
		student("S1", "Alice", descriptor(0.5)),
		student("S2", "Bob", descriptor(0.1)),
		student("S3", "Carol", descriptor(0.3)),
	}

	match, ok := NearestMatch(descriptor(), candidates, DefaultThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.StudentID != "S2" {
		t.Errorf("expected nearest student S2, got %s", match.StudentID)
	}
}

func TestNearestMatch_TieKeepsFirstCandidate(t *testing.T) {
	// Candidates arrive ordered by id; equal distances resolve to the first
	// one seen, i.e. the smallest id.
	candidates := []database.Student{
		student("S1", "Alice", descriptor(0.2)),
		student("S2", "Bob", descriptor(0.2)),
	}

	match, ok := NearestMatch(descriptor(), candidates, DefaultThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.StudentID != "S1" {
		t.Errorf("expected tie to resolve to S1, got %s", match.StudentID)
	}
}

func TestNearestMatch_SkipsEmptyDescriptors(t *testing.T) {
	candidates := []database.Student{
		{ID: "S1", Name: "Alice", Enrolled: true},
		student("S2", "Bob", descriptor(0.1)),
	}

	match, ok := NearestMatch(descriptor(), candidates, DefaultThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if match.StudentID != "S2" {
		t.Errorf("expected S2, got %s", match.StudentID)
	}
}

func TestConfidence(t *testing.T) {
	cases := []struct {
		distance float64
		want     string
	}{
		{0, "100.00"},
		{0.25, "75.00"},
		{0.59, "41.00"},
	}

	for _, tc := range cases {
		if got := fmt.Sprintf("%.2f", Confidence(tc.distance)); got != tc.want {
			t.Errorf("Confidence(%f) = %s, want %s", tc.distance, got, tc.want)
		}
	}
}
