package mathutil

import "math"

// LogZero represents log(0), used as negative infinity in log-domain arithmetic.
const LogZero = -1e30

// FloorLog returns log(max(p, floor)). floor must be positive; it keeps
// scores finite when p is zero or vanishingly small.
func FloorLog(p, floor float64) float64 {
	if p < floor || math.IsNaN(p) {
		p = floor
	}
	return math.Log(p)
}

// Argmax returns the index of the largest value in xs, or -1 if xs is empty.
// Ties resolve to the lowest index.
func Argmax(xs []float64) int {
	best := -1
	bestVal := math.Inf(-1)
	for i, x := range xs {
		if best < 0 || x > bestVal {
			best = i
			bestVal = x
		}
	}
	return best
}
