package engine

import (
	"math"
	"testing"

	"github.com/iwvelando/travel-reimburse/pkg/mathutil"
)

func TestEvaluateCalibratedScenarios(t *testing.T) {
	c := DefaultConstants()

	tests := []struct {
		name        string
		days        int
		miles       float64
		receipts    float64
		expected    float64
		category    TripCategory
		adjustments []Adjustment
	}{
		{
			name:        "Five day trip gets the five-day multiplier",
			days:        5,
			miles:       300,
			receipts:    500.00,
			expected:    774.72, // 842.09 baseline * 0.92
			category:    FiveDay,
			adjustments: []Adjustment{AdjustmentBaseline, CategoryAdjustment(FiveDay)},
		},
		{
			name:        "Receipts ending in .49 trigger the quirk",
			days:        3,
			miles:       150,
			receipts:    200.49,
			expected:    256.13, // 560.47 baseline * 0.457
			category:    Standard,
			adjustments: []Adjustment{AdjustmentBaseline, AdjustmentQuirk},
		},
		{
			name:        "Mileage above the cap earns the reduced marginal rate",
			days:        4,
			miles:       1000,
			receipts:    500.00,
			expected:    1064.84, // 1103.96 baseline - 200 excess * (0.4456 - 0.25)
			category:    Standard,
			adjustments: []Adjustment{AdjustmentBaseline, AdjustmentMileCap},
		},
		{
			name:        "Receipts above the cap earn the reduced marginal rate",
			days:        1,
			miles:       0,
			receipts:    2000.00,
			expected:    1035.98,
			category:    Standard,
			adjustments: []Adjustment{AdjustmentBaseline, AdjustmentReceiptCap},
		},
		{
			name:        "Both caps fire independently",
			days:        3,
			miles:       1000,
			receipts:    2000.00,
			expected:    1542.56,
			category:    Standard,
			adjustments: []Adjustment{AdjustmentBaseline, AdjustmentMileCap, AdjustmentReceiptCap},
		},
		{
			name:        "Per-day mileage inside the band earns the flat bonus",
			days:        2,
			miles:       400,
			receipts:    100.00,
			expected:    613.34, // 583.34 baseline + 30
			category:    Standard,
			adjustments: []Adjustment{AdjustmentBaseline, AdjustmentEfficiencyBonus},
		},
		{
			name:        "Short minimal trip gets the boost",
			days:        1,
			miles:       50,
			receipts:    20.00,
			expected:    398.70, // 346.698 baseline * 1.15
			category:    ShortMinimal,
			adjustments: []Adjustment{AdjustmentBaseline, CategoryAdjustment(ShortMinimal)},
		},
		{
			name:        "High value week-long trip",
			days:        7,
			miles:       500,
			receipts:    1500.00,
			expected:    1767.76, // 1414.21 baseline * 1.25
			category:    HighValueWeekLong,
			adjustments: []Adjustment{AdjustmentBaseline, CategoryAdjustment(HighValueWeekLong)},
		},
		{
			name:        "High mileage long haul combines cap and multiplier",
			days:        12,
			miles:       1200,
			receipts:    500.00,
			expected:    1287.95, // (1593.48 - 400 excess * (0.4456 - 0.25)) * 0.85
			category:    HighMileageLongHaul,
			adjustments: []Adjustment{AdjustmentBaseline, AdjustmentMileCap, CategoryAdjustment(HighMileageLongHaul)},
		},
		{
			name:        "High value biweekly trip",
			days:        13,
			miles:       500,
			receipts:    1200.00,
			expected:    1919.57, // 1599.64 baseline * 1.20
			category:    HighValueBiweekly,
			adjustments: []Adjustment{AdjustmentBaseline, CategoryAdjustment(HighValueBiweekly)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := NewTripInput(tt.days, tt.miles, tt.receipts)
			if err != nil {
				t.Fatalf("NewTripInput() error = %v", err)
			}
			result, err := Evaluate(input, c)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !mathutil.WithinTolerance(result.Amount, tt.expected, 0.001) {
				t.Errorf("Evaluate() amount = %.4f, expected %.2f", result.Amount, tt.expected)
			}
			if result.Category != tt.category {
				t.Errorf("Evaluate() category = %s, expected %s", result.Category, tt.category)
			}
			if len(result.Adjustments) != len(tt.adjustments) {
				t.Fatalf("Evaluate() adjustments = %v, expected %v", result.Adjustments, tt.adjustments)
			}
			for i := range tt.adjustments {
				if result.Adjustments[i] != tt.adjustments[i] {
					t.Errorf("Evaluate() adjustment %d = %s, expected %s", i, result.Adjustments[i], tt.adjustments[i])
				}
			}
		})
	}
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	c := DefaultConstants()

	input := TripInput{DurationDays: 0, MilesTraveled: 100, TotalReceiptsAmount: 100}
	_, err := Evaluate(input, c)
	if err == nil {
		t.Fatal("Evaluate() with zero duration should fail")
	}
	invalid, ok := err.(*InvalidInputError)
	if !ok {
		t.Fatalf("Evaluate() error type = %T, expected *InvalidInputError", err)
	}
	if invalid.Field != "durationDays" {
		t.Errorf("InvalidInputError field = %s, expected durationDays", invalid.Field)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	c := DefaultConstants()
	input, err := NewTripInput(8, 1100, 1250.49)
	if err != nil {
		t.Fatalf("NewTripInput() error = %v", err)
	}

	first, err := Evaluate(input, c)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := Evaluate(input, c)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if again.Amount != first.Amount {
			t.Fatalf("Evaluate() run %d amount = %v, expected bit-identical %v", i, again.Amount, first.Amount)
		}
		if again.Category != first.Category {
			t.Fatalf("Evaluate() run %d category = %s, expected %s", i, again.Category, first.Category)
		}
		if len(again.Adjustments) != len(first.Adjustments) {
			t.Fatalf("Evaluate() run %d adjustments = %v, expected %v", i, again.Adjustments, first.Adjustments)
		}
	}
}

// Marginal amount per mile must stay positive everywhere but drop once the
// mileage crosses the cap threshold.
func TestMileCapMarginalRate(t *testing.T) {
	c := DefaultConstants()

	amountAt := func(miles float64) float64 {
		input, err := NewTripInput(3, miles, 100)
		if err != nil {
			t.Fatalf("NewTripInput() error = %v", err)
		}
		result, err := Evaluate(input, c)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		return result.Amount
	}

	belowDelta := amountAt(750) - amountAt(700)
	aboveDelta := amountAt(950) - amountAt(900)

	if belowDelta <= 0 || aboveDelta <= 0 {
		t.Fatalf("amount must strictly increase with mileage: below delta %.4f, above delta %.4f", belowDelta, aboveDelta)
	}
	if aboveDelta >= belowDelta {
		t.Errorf("marginal rate above the cap (%.4f per 50mi) must be smaller than below it (%.4f per 50mi)", aboveDelta, belowDelta)
	}
	if !mathutil.WithinTolerance(belowDelta, 50*c.MileCoefficient, 0.011) {
		t.Errorf("marginal rate below the cap = %.4f per 50mi, expected %.4f", belowDelta, 50*c.MileCoefficient)
	}
	if !mathutil.WithinTolerance(aboveDelta, 50*c.MileExcessRate, 0.011) {
		t.Errorf("marginal rate above the cap = %.4f per 50mi, expected %.4f", aboveDelta, 50*c.MileExcessRate)
	}
}

func TestQuirkExactness(t *testing.T) {
	c := DefaultConstants()

	tests := []struct {
		name     string
		receipts float64
		fires    bool
	}{
		{"Ends in .49", 200.49, true},
		{"Ends in .99", 100.99, true},
		{"Whole dollars", 200.00, false},
		{"Ends in .50", 200.50, false},
		{"Ends in .48", 200.48, false},
		{"Third decimal rounds away from the trigger", 200.499, false},
		{"Large amount ending in .49", 1999.49, true},
		{"Sub-dollar .99", 0.99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := NewTripInput(3, 100, tt.receipts)
			if err != nil {
				t.Fatalf("NewTripInput() error = %v", err)
			}
			result, err := Evaluate(input, c)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			fired := false
			for _, adjustment := range result.Adjustments {
				if adjustment == AdjustmentQuirk {
					fired = true
				}
			}
			if fired != tt.fires {
				t.Errorf("quirk fired = %v for receipts %.3f, expected %v", fired, tt.receipts, tt.fires)
			}
		})
	}
}

func TestEfficiencyBandEdgesInclusive(t *testing.T) {
	c := DefaultConstants()

	tests := []struct {
		name  string
		miles float64 // over 1 day, so miles == miles per day
		bonus bool
	}{
		{"Just below the band", 179.99, false},
		{"Lower edge", 180, true},
		{"Inside the band", 200, true},
		{"Upper edge", 220, true},
		{"Just above the band", 220.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := NewTripInput(1, tt.miles, 500)
			if err != nil {
				t.Fatalf("NewTripInput() error = %v", err)
			}
			result, err := Evaluate(input, c)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			fired := false
			for _, adjustment := range result.Adjustments {
				if adjustment == AdjustmentEfficiencyBonus {
					fired = true
				}
			}
			if fired != tt.bonus {
				t.Errorf("efficiency bonus fired = %v at %.2f miles/day, expected %v", fired, tt.miles, tt.bonus)
			}
		})
	}
}

// A synthetic calibration that drives the total negative must clamp at zero
// rather than paying out a negative reimbursement.
func TestEvaluateClampsAtZero(t *testing.T) {
	c := DefaultConstants()
	c.Intercept = -5000

	input, err := NewTripInput(1, 10, 10)
	if err != nil {
		t.Fatalf("NewTripInput() error = %v", err)
	}
	result, err := Evaluate(input, c)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if result.Amount != 0 {
		t.Errorf("Evaluate() amount = %v, expected clamp at 0", result.Amount)
	}
}

func TestEvaluateAmountHasTwoDecimals(t *testing.T) {
	c := DefaultConstants()

	// Sweep a spread of inputs; every amount times 100 must be integral.
	for days := 1; days <= 15; days++ {
		for _, miles := range []float64{0, 99.5, 450.25, 1234.75} {
			for _, receipts := range []float64{0, 49.99, 820.13, 2500.49} {
				input, err := NewTripInput(days, miles, receipts)
				if err != nil {
					t.Fatalf("NewTripInput() error = %v", err)
				}
				result, err := Evaluate(input, c)
				if err != nil {
					t.Fatalf("Evaluate() error = %v", err)
				}
				cents := result.Amount * 100
				if math.Abs(cents-math.Round(cents)) > 1e-6 {
					t.Errorf("Evaluate(%d, %.2f, %.2f) amount = %v is not a whole number of cents", days, miles, receipts, result.Amount)
				}
			}
		}
	}
}
