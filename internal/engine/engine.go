// Package engine reproduces the observed input/output behavior of the legacy
// travel-expense system with a layered numeric model: a linear baseline,
// reduced marginal rates above calibrated magnitude thresholds, a category
// multiplier, a flat efficiency bonus, and an emulation of the legacy
// fractional-cent artifact, rounded half-up to whole cents.
//
// Evaluate is a pure function of (TripInput, CalibratedConstants): no I/O,
// no hidden state, and identical inputs always produce identical results, so
// evaluations may run concurrently over a shared constants value.
package engine

import (
	"github.com/iwvelando/travel-reimburse/pkg/mathutil"
	"github.com/iwvelando/travel-reimburse/pkg/money"
)

// Adjustment tags a pipeline stage that fired during an evaluation. The
// ordered tag list in a ReimbursementResult records why an amount came out
// the way it did.
type Adjustment string

const (
	AdjustmentBaseline        Adjustment = "baseline"
	AdjustmentMileCap         Adjustment = "mile-cap"
	AdjustmentReceiptCap      Adjustment = "receipt-cap"
	AdjustmentEfficiencyBonus Adjustment = "efficiency-bonus"
	AdjustmentQuirk           Adjustment = "quirk"
)

// CategoryAdjustment returns the tag recorded when a non-standard category
// multiplier fires.
func CategoryAdjustment(category TripCategory) Adjustment {
	return Adjustment("category:" + category.String())
}

// ReimbursementResult is the outcome of one evaluation: the final rounded
// amount, the category the trip classified into, and the ordered adjustments
// that fired.
type ReimbursementResult struct {
	Amount      float64
	Category    TripCategory
	Adjustments []Adjustment
}

// Evaluate runs the full pipeline over one trip. The stage order is fixed:
// baseline, magnitude caps, category multiplier, efficiency bonus, quirk
// multiplier, rounding. On invalid input it fails before any stage runs.
func Evaluate(input TripInput, c CalibratedConstants) (ReimbursementResult, error) {
	if err := input.validate(); err != nil {
		return ReimbursementResult{}, err
	}

	total := c.Intercept +
		c.DayCoefficient*float64(input.DurationDays) +
		c.MileCoefficient*input.MilesTraveled +
		c.ReceiptCoefficient*input.TotalReceiptsAmount
	adjustments := []Adjustment{AdjustmentBaseline}

	// The baseline already paid the full coefficient on the excess portion;
	// swap that contribution for the reduced marginal rate. The two caps are
	// independent and may both fire.
	if input.MilesTraveled > c.MileCapThreshold {
		excess := input.MilesTraveled - c.MileCapThreshold
		total += excess * (c.MileExcessRate - c.MileCoefficient)
		adjustments = append(adjustments, AdjustmentMileCap)
	}
	if input.TotalReceiptsAmount > c.ReceiptCapThreshold {
		excess := input.TotalReceiptsAmount - c.ReceiptCapThreshold
		total += excess * (c.ReceiptExcessRate - c.ReceiptCoefficient)
		adjustments = append(adjustments, AdjustmentReceiptCap)
	}

	category := Classify(input, c)
	if category != Standard {
		total *= c.Multiplier(category)
		adjustments = append(adjustments, CategoryAdjustment(category))
	}

	// Step function, both band edges inclusive.
	milesPerDay := input.MilesPerDay()
	if milesPerDay >= c.EfficiencyBandLow && milesPerDay <= c.EfficiencyBandHigh {
		total += c.EfficiencyBonus
		adjustments = append(adjustments, AdjustmentEfficiencyBonus)
	}

	// Legacy artifact: receipt totals ending in specific cent values were
	// paid out at a fraction of the computed amount. Keys on the exact
	// integer cent component, never float or string comparison.
	if quirkTriggered(input.TotalReceiptsAmount, c.QuirkCents) {
		total *= c.QuirkFactor
		adjustments = append(adjustments, AdjustmentQuirk)
	}

	amount := mathutil.Max(mathutil.RoundHalfUp(total), 0)

	return ReimbursementResult{
		Amount:      amount,
		Category:    category,
		Adjustments: adjustments,
	}, nil
}

func quirkTriggered(receipts float64, quirkCents []int) bool {
	cents := money.CentComponent(receipts)
	for _, trigger := range quirkCents {
		if cents == trigger {
			return true
		}
	}
	return false
}
