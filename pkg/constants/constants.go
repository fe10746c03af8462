// Package constants provides shared constants for the travel-reimburse application.
package constants

// Default calibration values, recovered by regression against the legacy
// system's historical outputs. Every one of these can be overridden through
// the calibration section of the config file.
const (
	// DefaultIntercept is the baseline model intercept
	DefaultIntercept = 266.71

	// DefaultDayCoefficient is the baseline rate per trip day
	DefaultDayCoefficient = 50.05

	// DefaultMileCoefficient is the baseline rate per mile traveled
	DefaultMileCoefficient = 0.4456

	// DefaultReceiptCoefficient is the baseline rate per receipt dollar
	DefaultReceiptCoefficient = 0.3829
)

// Magnitude cap defaults: above each threshold the marginal rate drops from
// the full coefficient to the excess rate.
const (
	// DefaultMileCapThreshold is the mileage above which the reduced rate applies
	DefaultMileCapThreshold = 800.0

	// DefaultMileExcessRate is the marginal rate per mile beyond the threshold
	DefaultMileExcessRate = 0.25

	// DefaultReceiptCapThreshold is the receipt total above which the reduced rate applies
	DefaultReceiptCapThreshold = 1800.0

	// DefaultReceiptExcessRate is the marginal rate per receipt dollar beyond the threshold
	DefaultReceiptExcessRate = 0.15
)

// Trip classification cut defaults
const (
	// DefaultHighValueReceiptCut separates high-value trips for the week-long
	// and biweekly categories
	DefaultHighValueReceiptCut = 1000.0

	// DefaultHighMileageCut separates high-mileage long hauls
	DefaultHighMileageCut = 1000.0

	// DefaultMinimalMilesCut bounds the short-minimal category's mileage
	DefaultMinimalMilesCut = 100.0

	// DefaultMinimalReceiptsCut bounds the short-minimal category's receipts
	DefaultMinimalReceiptsCut = 50.0
)

// Category multiplier defaults
const (
	DefaultFiveDayMultiplier             = 0.92
	DefaultHighValueWeekLongMultiplier   = 1.25
	DefaultHighMileageLongHaulMultiplier = 0.85
	DefaultHighValueBiweeklyMultiplier   = 1.20
	DefaultShortMinimalMultiplier        = 1.15
)

// Efficiency bonus defaults: a flat bonus for per-day mileage inside the band.
const (
	DefaultEfficiencyBandLow  = 180.0
	DefaultEfficiencyBandHigh = 220.0
	DefaultEfficiencyBonus    = 30.0
)

// Quirk defaults: receipt totals whose cent component is exactly .49 or .99
// reproduce a legacy artifact.
const (
	DefaultQuirkCentLow  = 49
	DefaultQuirkCentHigh = 99
	DefaultQuirkFactor   = 0.457
)

// Accuracy tolerances used by the batch scorer
const (
	// ExactMatchTolerance is the accuracy band counted as an exact match
	ExactMatchTolerance = 0.01

	// CloseMatchTolerance is the accuracy band counted as a close match
	CloseMatchTolerance = 1.00
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CentsPerDollar is used when converting amounts to integer cents
	CentsPerDollar = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Batch evaluation defaults
const (
	// DefaultBatchWorkers is the default number of concurrent evaluations
	DefaultBatchWorkers = 8
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for fixture files (1 MB)
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024
)
