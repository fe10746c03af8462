package mathutil

import (
	"math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		// Ties chosen to be exactly representable in binary
		{"Tie rounds up", 1.125, 1.13},
		{"Tie rounds up again", 1.875, 1.88},
		{"Sub-dollar tie", 0.125, 0.13},
		{"Below midpoint rounds down", 1.234, 1.23},
		{"Above midpoint rounds up", 1.239, 1.24},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Negative tie rounds toward positive", -1.125, -1.12},
		{"Negative below midpoint", -1.234, -1.23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundHalfUp(tt.input)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("RoundHalfUp(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundHalfUpNeverBankers(t *testing.T) {
	// Banker's rounding would send these ties to the even cent; half-up must
	// always go up.
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.625, 0.63}, // banker's would give 0.62
		{2.125, 2.13}, // banker's would give 2.12
		{4.625, 4.63}, // banker's would give 4.62
	}

	for _, tt := range tests {
		if got := RoundHalfUp(tt.input); math.Abs(got-tt.expected) > 0.0001 {
			t.Errorf("RoundHalfUp(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1.0, 1.0, 0.1, true},
		{"Within tolerance", 1.0, 1.05, 0.1, true},
		{"Outside tolerance", 1.0, 1.15, 0.1, false},
		{"Zero tolerance exact match", 1.0, 1.0, 0.0, true},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	if got := Max(1.0, 2.0); got != 2.0 {
		t.Errorf("Max(1, 2) = %v, expected 2", got)
	}
	if got := Max(0.0, -1.0); got != 0.0 {
		t.Errorf("Max(0, -1) = %v, expected 0", got)
	}
	if got := Max(-524.13, 0.0); got != 0.0 {
		t.Errorf("Max(-524.13, 0) = %v, expected 0", got)
	}
}
