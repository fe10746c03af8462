// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/travel-reimburse/pkg/constants"
)

// RoundHalfUp rounds a value to two decimals, i.e. to represent real
// currency. Ties round up (x.xx5 becomes x.xx+0.01), never to even.
func RoundHalfUp(val float64) float64 {
	return math.Floor(val*constants.DecimalPrecision+0.5) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
