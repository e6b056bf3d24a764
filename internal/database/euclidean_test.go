package database

import (
	"math"
	"testing"
)

func TestEuclideanDistance_Identical(t *testing.T) {
	a := []float32{1, 2, 3}
	if d := EuclideanDistance(a, a); d != 0 {
		t.Errorf("expected distance 0 for identical vectors, got %f", d)
	}
}

func TestEuclideanDistance_KnownValue(t *testing.T) {
	a := []float32{0, 0}
	b := []float32{3, 4}
	if d := EuclideanDistance(a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %f", d)
	}
}

func TestEuclideanDistance_SingleComponent(t *testing.T) {
	a := make([]float32, 128)
	b := make([]float32, 128)
	b[0] = 0.59

	d := EuclideanDistance(a, b)
	if math.Abs(d-0.59) > 1e-6 {
		t.Errorf("expected distance 0.59, got %f", d)
	}
}

func TestEuclideanDistance_MismatchedLengths(t *testing.T) {
	if d := EuclideanDistance([]float32{1, 2}, []float32{1, 2, 3}); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for mismatched lengths, got %f", d)
	}
}

func TestEuclideanDistance_Empty(t *testing.T) {
	if d := EuclideanDistance(nil, nil); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for empty vectors, got %f", d)
	}
}
