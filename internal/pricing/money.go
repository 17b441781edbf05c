// internal/pricing/money.go
package pricing

import "math"

// Round2 rounds a monetary amount to the nearest cent.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// minorToMajor converts minor currency units (cents) to major units.
func minorToMajor(minor int64) float64 {
	return float64(minor) / 100
}
