package service

import "math"

// roundCents rounds half up to the nearest cent.
func roundCents(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}

// percentOf returns pct of a cent amount, rounded half up.
func percentOf(cents int64, pct float64) int64 {
	return roundCents(float64(cents) * pct)
}
