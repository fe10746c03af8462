package engine

// TripCategory is the closed set of trip shapes the legacy system treated
// differently. Exactly one category applies to any valid input.
type TripCategory int

const (
	// Standard is the catch-all category with multiplier 1.0.
	Standard TripCategory = iota

	// FiveDay covers trips of exactly five days.
	FiveDay

	// HighValueWeekLong covers 7-8 day trips with receipts above the
	// high-value cut.
	HighValueWeekLong

	// HighMileageLongHaul covers trips of 12 days or more with mileage above
	// the high-mileage cut.
	HighMileageLongHaul

	// HighValueBiweekly covers 13-14 day trips with receipts above the
	// high-value cut.
	HighValueBiweekly

	// ShortMinimal covers single-day trips with minimal mileage and receipts.
	ShortMinimal
)

func (c TripCategory) String() string {
	switch c {
	case FiveDay:
		return "five-day"
	case HighValueWeekLong:
		return "high-value-week-long"
	case HighMileageLongHaul:
		return "high-mileage-long-haul"
	case HighValueBiweekly:
		return "high-value-biweekly"
	case ShortMinimal:
		return "short-minimal"
	default:
		return "standard"
	}
}

// Classify assigns a trip its category. Rules are evaluated top-down, most
// specific first, and the first match wins; this fixed precedence is what
// keeps classification unambiguous where the raw cuts would overlap (a
// 13-day high-value, high-mileage trip is a HighMileageLongHaul, never a
// HighValueBiweekly).
func Classify(input TripInput, c CalibratedConstants) TripCategory {
	switch {
	case input.DurationDays == 5:
		return FiveDay
	case (input.DurationDays == 7 || input.DurationDays == 8) && input.TotalReceiptsAmount > c.HighValueReceiptCut:
		return HighValueWeekLong
	case input.DurationDays >= 12 && input.MilesTraveled > c.HighMileageCut:
		return HighMileageLongHaul
	case (input.DurationDays == 13 || input.DurationDays == 14) && input.TotalReceiptsAmount > c.HighValueReceiptCut:
		return HighValueBiweekly
	case input.DurationDays < 2 && input.MilesTraveled < c.MinimalMilesCut && input.TotalReceiptsAmount < c.MinimalReceiptsCut:
		return ShortMinimal
	default:
		return Standard
	}
}
