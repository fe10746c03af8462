// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/travel-reimburse/internal/engine"
	"github.com/iwvelando/travel-reimburse/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (expected %s or %s)",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV)
	}
}

// ValidateCalibration sanity-checks a calibration and returns human-readable
// warnings for values that are legal but almost certainly miscalibrated.
func ValidateCalibration(c engine.CalibratedConstants) []string {
	var warnings []string

	if c.DayCoefficient <= 0 {
		warnings = append(warnings, fmt.Sprintf("day coefficient %.4f is not positive - longer trips will not increase the baseline", c.DayCoefficient))
	}
	if c.MileCoefficient <= 0 {
		warnings = append(warnings, fmt.Sprintf("mile coefficient %.4f is not positive - mileage will not increase the baseline", c.MileCoefficient))
	}
	if c.ReceiptCoefficient <= 0 {
		warnings = append(warnings, fmt.Sprintf("receipt coefficient %.4f is not positive - receipts will not increase the baseline", c.ReceiptCoefficient))
	}

	if c.MileCapThreshold < 0 {
		warnings = append(warnings, fmt.Sprintf("mile cap threshold %.2f is negative", c.MileCapThreshold))
	}
	if c.ReceiptCapThreshold < 0 {
		warnings = append(warnings, fmt.Sprintf("receipt cap threshold %.2f is negative", c.ReceiptCapThreshold))
	}
	if c.MileExcessRate >= c.MileCoefficient {
		warnings = append(warnings, fmt.Sprintf("mile excess rate %.4f does not reduce the marginal rate (full coefficient %.4f)", c.MileExcessRate, c.MileCoefficient))
	}
	if c.ReceiptExcessRate >= c.ReceiptCoefficient {
		warnings = append(warnings, fmt.Sprintf("receipt excess rate %.4f does not reduce the marginal rate (full coefficient %.4f)", c.ReceiptExcessRate, c.ReceiptCoefficient))
	}

	for category, multiplier := range c.CategoryMultipliers {
		if multiplier <= 0 {
			warnings = append(warnings, fmt.Sprintf("multiplier %.4f for category %s is not positive", multiplier, category))
		}
	}

	if c.EfficiencyBandLow > c.EfficiencyBandHigh {
		warnings = append(warnings, fmt.Sprintf("efficiency band is inverted (%.2f > %.2f) - the bonus can never fire", c.EfficiencyBandLow, c.EfficiencyBandHigh))
	}

	for _, cents := range c.QuirkCents {
		if cents < 0 || cents > 99 {
			warnings = append(warnings, fmt.Sprintf("quirk cent trigger %d is outside [0, 99] and can never fire", cents))
		}
	}
	if c.QuirkFactor <= 0 {
		warnings = append(warnings, fmt.Sprintf("quirk factor %.4f is not positive", c.QuirkFactor))
	}

	return warnings
}
