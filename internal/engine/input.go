package engine

import (
	"fmt"
	"math"
)

// TripInput holds the three raw values describing a submitted trip. Construct
// it with NewTripInput so invalid combinations are rejected before any
// pipeline stage can observe them.
type TripInput struct {
	DurationDays        int
	MilesTraveled       float64
	TotalReceiptsAmount float64
}

// InvalidInputError is the only error kind the engine raises. It names the
// offending field so callers can report it.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NewTripInput validates and constructs a TripInput.
func NewTripInput(durationDays int, milesTraveled, totalReceipts float64) (TripInput, error) {
	input := TripInput{
		DurationDays:        durationDays,
		MilesTraveled:       milesTraveled,
		TotalReceiptsAmount: totalReceipts,
	}
	if err := input.validate(); err != nil {
		return TripInput{}, err
	}
	return input, nil
}

func (input TripInput) validate() error {
	if input.DurationDays <= 0 {
		return &InvalidInputError{Field: "durationDays", Reason: "must be a positive number of days"}
	}
	if math.IsNaN(input.MilesTraveled) || math.IsInf(input.MilesTraveled, 0) {
		return &InvalidInputError{Field: "milesTraveled", Reason: "must be finite"}
	}
	if input.MilesTraveled < 0 {
		return &InvalidInputError{Field: "milesTraveled", Reason: "must be non-negative"}
	}
	if math.IsNaN(input.TotalReceiptsAmount) || math.IsInf(input.TotalReceiptsAmount, 0) {
		return &InvalidInputError{Field: "totalReceiptsAmount", Reason: "must be finite"}
	}
	if input.TotalReceiptsAmount < 0 {
		return &InvalidInputError{Field: "totalReceiptsAmount", Reason: "must be non-negative"}
	}
	return nil
}

// MilesPerDay returns the trip's per-day mileage.
func (input TripInput) MilesPerDay() float64 {
	return input.MilesTraveled / float64(input.DurationDays)
}
