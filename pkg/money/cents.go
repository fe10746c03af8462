// Package money provides exact cent arithmetic for currency amounts.
//
// Amounts travel through the pipeline as float64 dollars, but any logic that
// keys on a literal cent pattern has to work on integer cents; comparing
// formatted strings or raw floats produces precision-dependent false
// negatives.
package money

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iwvelando/travel-reimburse/pkg/constants"
)

// ToCents converts a dollar amount with two implied decimal places into
// integer cents. The amount is rounded to the nearest cent first so that
// binary representation error (e.g. 200.49 stored as 200.48999...) cannot
// shift the result.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * constants.CentsPerDollar))
}

// CentComponent returns the fractional-dollar portion of an amount as an
// integer number of cents in [0, 99].
func CentComponent(amount float64) int {
	cents := ToCents(math.Abs(amount))
	return int(cents % constants.CentsPerDollar)
}

// ParseAmount parses a non-negative currency amount from its decimal string
// representation. It rejects negative, non-finite, and malformed values.
func ParseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("invalid amount %q: not finite", s)
	}
	if amount < 0 {
		return 0, fmt.Errorf("invalid amount %q: negative", s)
	}
	return amount, nil
}
