package database

import "math"

// EuclideanDistance computes the Euclidean distance between two descriptors.
// Returns +Inf for empty or mismatched-length inputs, so callers treat such
// pairs as infinitely far apart rather than erroring mid-scan.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
