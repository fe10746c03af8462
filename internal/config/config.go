// Package config defines the data structures related to configuration and
// includes functions for loading and converting the config.
package config

import (
	"fmt"

	"github.com/iwvelando/travel-reimburse/internal/engine"
	"github.com/iwvelando/travel-reimburse/pkg/constants"
	"github.com/iwvelando/travel-reimburse/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for travel-reimburse.
type Configuration struct {
	Calibration CalibrationConfig `yaml:"calibration,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// CalibrationConfig holds every calibrated value the pipeline consumes.
// Keys left out of the config file keep their recovered defaults.
type CalibrationConfig struct {
	Intercept          float64
	DayCoefficient     float64
	MileCoefficient    float64
	ReceiptCoefficient float64

	MileCapThreshold    float64
	MileExcessRate      float64
	ReceiptCapThreshold float64
	ReceiptExcessRate   float64

	HighValueReceiptCut float64
	HighMileageCut      float64
	MinimalMilesCut     float64
	MinimalReceiptsCut  float64

	FiveDayMultiplier             float64
	HighValueWeekLongMultiplier   float64
	HighMileageLongHaulMultiplier float64
	HighValueBiweeklyMultiplier   float64
	ShortMinimalMultiplier        float64

	EfficiencyBandLow  float64
	EfficiencyBandHigh float64
	EfficiencyBonus    float64

	QuirkCents  []int
	QuirkFactor float64
}

// LoadConfiguration loads the YAML-formatted configuration at the given
// path. An empty path yields the default calibration with no logging or
// output overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.AutomaticEnv()
	setCalibrationDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

func setCalibrationDefaults(v *viper.Viper) {
	v.SetDefault("calibration.intercept", constants.DefaultIntercept)
	v.SetDefault("calibration.dayCoefficient", constants.DefaultDayCoefficient)
	v.SetDefault("calibration.mileCoefficient", constants.DefaultMileCoefficient)
	v.SetDefault("calibration.receiptCoefficient", constants.DefaultReceiptCoefficient)

	v.SetDefault("calibration.mileCapThreshold", constants.DefaultMileCapThreshold)
	v.SetDefault("calibration.mileExcessRate", constants.DefaultMileExcessRate)
	v.SetDefault("calibration.receiptCapThreshold", constants.DefaultReceiptCapThreshold)
	v.SetDefault("calibration.receiptExcessRate", constants.DefaultReceiptExcessRate)

	v.SetDefault("calibration.highValueReceiptCut", constants.DefaultHighValueReceiptCut)
	v.SetDefault("calibration.highMileageCut", constants.DefaultHighMileageCut)
	v.SetDefault("calibration.minimalMilesCut", constants.DefaultMinimalMilesCut)
	v.SetDefault("calibration.minimalReceiptsCut", constants.DefaultMinimalReceiptsCut)

	v.SetDefault("calibration.fiveDayMultiplier", constants.DefaultFiveDayMultiplier)
	v.SetDefault("calibration.highValueWeekLongMultiplier", constants.DefaultHighValueWeekLongMultiplier)
	v.SetDefault("calibration.highMileageLongHaulMultiplier", constants.DefaultHighMileageLongHaulMultiplier)
	v.SetDefault("calibration.highValueBiweeklyMultiplier", constants.DefaultHighValueBiweeklyMultiplier)
	v.SetDefault("calibration.shortMinimalMultiplier", constants.DefaultShortMinimalMultiplier)

	v.SetDefault("calibration.efficiencyBandLow", constants.DefaultEfficiencyBandLow)
	v.SetDefault("calibration.efficiencyBandHigh", constants.DefaultEfficiencyBandHigh)
	v.SetDefault("calibration.efficiencyBonus", constants.DefaultEfficiencyBonus)

	v.SetDefault("calibration.quirkCents", []int{constants.DefaultQuirkCentLow, constants.DefaultQuirkCentHigh})
	v.SetDefault("calibration.quirkFactor", constants.DefaultQuirkFactor)
}

// Constants converts the loaded calibration into the immutable value the
// engine consumes. The conversion happens once at startup; the result is
// never mutated afterwards.
func (conf *Configuration) Constants() engine.CalibratedConstants {
	cal := conf.Calibration
	return engine.CalibratedConstants{
		Intercept:          cal.Intercept,
		DayCoefficient:     cal.DayCoefficient,
		MileCoefficient:    cal.MileCoefficient,
		ReceiptCoefficient: cal.ReceiptCoefficient,

		MileCapThreshold:    cal.MileCapThreshold,
		MileExcessRate:      cal.MileExcessRate,
		ReceiptCapThreshold: cal.ReceiptCapThreshold,
		ReceiptExcessRate:   cal.ReceiptExcessRate,

		HighValueReceiptCut: cal.HighValueReceiptCut,
		HighMileageCut:      cal.HighMileageCut,
		MinimalMilesCut:     cal.MinimalMilesCut,
		MinimalReceiptsCut:  cal.MinimalReceiptsCut,

		CategoryMultipliers: map[engine.TripCategory]float64{
			engine.FiveDay:             cal.FiveDayMultiplier,
			engine.HighValueWeekLong:   cal.HighValueWeekLongMultiplier,
			engine.HighMileageLongHaul: cal.HighMileageLongHaulMultiplier,
			engine.HighValueBiweekly:   cal.HighValueBiweeklyMultiplier,
			engine.ShortMinimal:        cal.ShortMinimalMultiplier,
		},

		EfficiencyBandLow:  cal.EfficiencyBandLow,
		EfficiencyBandHigh: cal.EfficiencyBandHigh,
		EfficiencyBonus:    cal.EfficiencyBonus,

		QuirkCents:  cal.QuirkCents,
		QuirkFactor: cal.QuirkFactor,
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings do not prevent startup; a recalibration run may
// legitimately probe odd constants.
func (conf *Configuration) ValidateConfiguration() []string {
	return validation.ValidateCalibration(conf.Constants())
}
