package engine

import (
	"github.com/iwvelando/travel-reimburse/pkg/constants"
)

// CalibratedConstants holds every calibrated value the pipeline consumes.
// It is loaded once, passed explicitly into Evaluate, and never mutated, so
// a single value may be shared across any number of concurrent evaluations.
type CalibratedConstants struct {
	// Baseline model
	Intercept          float64
	DayCoefficient     float64
	MileCoefficient    float64
	ReceiptCoefficient float64

	// Magnitude caps: marginal rate beyond each threshold
	MileCapThreshold    float64
	MileExcessRate      float64
	ReceiptCapThreshold float64
	ReceiptExcessRate   float64

	// Classification cuts
	HighValueReceiptCut float64
	HighMileageCut      float64
	MinimalMilesCut     float64
	MinimalReceiptsCut  float64

	// Category multiplier table; absent categories multiply by 1.0
	CategoryMultipliers map[TripCategory]float64

	// Efficiency bonus band (inclusive) and flat bonus
	EfficiencyBandLow  float64
	EfficiencyBandHigh float64
	EfficiencyBonus    float64

	// Quirk emulation: exact cent components that trigger the factor
	QuirkCents  []int
	QuirkFactor float64
}

// DefaultConstants returns the calibration recovered from the legacy
// system's historical outputs.
func DefaultConstants() CalibratedConstants {
	return CalibratedConstants{
		Intercept:          constants.DefaultIntercept,
		DayCoefficient:     constants.DefaultDayCoefficient,
		MileCoefficient:    constants.DefaultMileCoefficient,
		ReceiptCoefficient: constants.DefaultReceiptCoefficient,

		MileCapThreshold:    constants.DefaultMileCapThreshold,
		MileExcessRate:      constants.DefaultMileExcessRate,
		ReceiptCapThreshold: constants.DefaultReceiptCapThreshold,
		ReceiptExcessRate:   constants.DefaultReceiptExcessRate,

		HighValueReceiptCut: constants.DefaultHighValueReceiptCut,
		HighMileageCut:      constants.DefaultHighMileageCut,
		MinimalMilesCut:     constants.DefaultMinimalMilesCut,
		MinimalReceiptsCut:  constants.DefaultMinimalReceiptsCut,

		CategoryMultipliers: map[TripCategory]float64{
			FiveDay:             constants.DefaultFiveDayMultiplier,
			HighValueWeekLong:   constants.DefaultHighValueWeekLongMultiplier,
			HighMileageLongHaul: constants.DefaultHighMileageLongHaulMultiplier,
			HighValueBiweekly:   constants.DefaultHighValueBiweeklyMultiplier,
			ShortMinimal:        constants.DefaultShortMinimalMultiplier,
		},

		EfficiencyBandLow:  constants.DefaultEfficiencyBandLow,
		EfficiencyBandHigh: constants.DefaultEfficiencyBandHigh,
		EfficiencyBonus:    constants.DefaultEfficiencyBonus,

		QuirkCents:  []int{constants.DefaultQuirkCentLow, constants.DefaultQuirkCentHigh},
		QuirkFactor: constants.DefaultQuirkFactor,
	}
}

// Multiplier returns the multiplier for a category, defaulting to 1.0 for
// categories with no table entry (notably Standard).
func (c CalibratedConstants) Multiplier(category TripCategory) float64 {
	if m, ok := c.CategoryMultipliers[category]; ok {
		return m
	}
	return 1.0
}
