package attendance

import (
	"github.com/jsvoboda/rollcall/internal/database"
)

// DefaultThreshold is the maximum Euclidean distance for a descriptor pair
// to count as the same person. The boundary is exclusive: a distance equal
// to the threshold is never a match.
const DefaultThreshold = 0.6

// Match is the outcome of a successful nearest-neighbor scan.
type Match struct {
	StudentID   string
	StudentName string
	Distance    float64
	Confidence  float64
}

// Confidence converts a match distance into a percentage. The formula
// (1 - distance) * 100 is part of the wire contract and assumes distances
// bounded in [0,1] for normalized descriptors; do not substitute a different
// normalization.
func Confidence(distance float64) float64 {
	return (1 - distance) * 100
}

// NearestMatch scans all candidates linearly and returns the one with the
// globally minimal distance to the query, considering only distances strictly
// below the threshold. Ties keep the first candidate encountered, so with
// candidates ordered by id the smallest id wins.
//
// A linear scan is fine for a class roster; if the enrolled population ever
// grows past a few thousand this is the place to introduce an index.
func NearestMatch(query []float32, candidates []database.Student, threshold float64) (Match, bool) {
	best := Match{}
	bestDistance := threshold
	found := false

	for _, candidate := range candidates {
		if len(candidate.Descriptor) == 0 {
			continue
		}
		distance := database.EuclideanDistance(query, candidate.Descriptor)
		if distance < bestDistance {
			bestDistance = distance
			best = Match{
				StudentID:   candidate.ID,
				StudentName: candidate.Name,
				Distance:    distance,
				Confidence:  Confidence(distance),
			}
			found = true
		}
	}

	return best, found
}
