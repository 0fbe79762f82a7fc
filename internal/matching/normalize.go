// internal/matching/normalize.go
package matching

import "math"

// normalize min-max scales v into [0,1]. A degenerate range (min == max,
// e.g. a single candidate or identical values) maps to the neutral
// midpoint 0.5 instead of dividing by zero.
func normalize(v, min, max float64) float64 {
	if max <= min {
		return 0.5
	}
	return clamp01((v - min) / (max - min))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round4 rounds to 4 decimal places so composite scores are stable
// across runs for tests and UI display.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
