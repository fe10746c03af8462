package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/iwvelando/travel-reimburse/internal/batch"
	"github.com/iwvelando/travel-reimburse/internal/config"
	"github.com/iwvelando/travel-reimburse/internal/engine"
	"github.com/iwvelando/travel-reimburse/internal/server"
	"github.com/iwvelando/travel-reimburse/pkg/constants"
	"github.com/iwvelando/travel-reimburse/pkg/format"
	"github.com/iwvelando/travel-reimburse/pkg/money"
	"github.com/iwvelando/travel-reimburse/pkg/output"
	"github.com/iwvelando/travel-reimburse/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "warn" // Stay quiet by default; stdout belongs to the result
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	logFormat := loggingConfig.Format
	if logFormat == "" {
		logFormat = "console"
	}

	// Configure encoder
	var zapConfig zap.Config
	switch logFormat {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", logFormat)
	}

	// Logs go to stderr so the reimbursement amount on stdout stays parseable
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", "", "path to calibration configuration file (defaults apply when omitted)")
	fixturesLocation := flag.String("fixtures", "", "path to a fixture file to score instead of evaluating a single trip")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	workers := flag.Int("workers", constants.DefaultBatchWorkers, "number of concurrent evaluations when scoring fixtures")
	explain := flag.Bool("explain", false, "print the category and adjustments that produced the amount")
	serve := flag.Bool("serve", false, "run the HTTP evaluation API instead of a one-shot evaluation")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to the HTTP server configuration file")
	flag.Parse()

	// Load the calibration config to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate calibration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	calibrated := conf.Constants()

	switch {
	case *serve:
		runServer(logger, calibrated, *serverConfigLocation)
	case *fixturesLocation != "":
		runBatch(logger, calibrated, conf, *fixturesLocation, *outputFormatFlag, *workers)
	default:
		runSingle(logger, calibrated, *explain)
	}
}

// runSingle evaluates the three positional arguments and prints the rounded
// amount as a two-decimal string.
func runSingle(logger *zap.Logger, calibrated engine.CalibratedConstants, explain bool) {
	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: travel-reimburse [flags] <duration-days> <miles-traveled> <total-receipts>")
		os.Exit(1)
	}

	durationDays, err := strconv.Atoi(args[0])
	if err != nil {
		logger.Fatal("duration must be an integer number of days",
			zap.String("op", "main"),
			zap.String("argument", args[0]),
			zap.Error(err),
		)
	}
	milesTraveled, err := money.ParseAmount(args[1])
	if err != nil {
		logger.Fatal("failed to parse miles traveled",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	totalReceipts, err := money.ParseAmount(args[2])
	if err != nil {
		logger.Fatal("failed to parse total receipts",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	input, err := engine.NewTripInput(durationDays, milesTraveled, totalReceipts)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	result, err := engine.Evaluate(input, calibrated)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if explain {
		fmt.Fprintf(os.Stderr, "category: %s\n", result.Category)
		for _, adjustment := range result.Adjustments {
			fmt.Fprintf(os.Stderr, "adjustment: %s\n", adjustment)
		}
	}
	fmt.Println(format.Amount(result.Amount))
}

// runBatch scores a fixture file against the calibration.
func runBatch(logger *zap.Logger, calibrated engine.CalibratedConstants, conf *config.Configuration, fixturesLocation, outputFormatFlag string, workers int) {
	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if outputFormatFlag != "" {
		outputFormat = outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err := validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	fixtures, err := batch.LoadFixtures(fixturesLocation)
	if err != nil {
		logger.Fatal("failed to load fixtures",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	summary, err := batch.Score(context.Background(), logger, fixtures, calibrated, workers)
	if err != nil {
		logger.Fatal("failed to score fixtures",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(summary, fixtures)
	case constants.OutputFormatCSV:
		output.CsvFormat(summary)
	}
}

// runServer starts the HTTP evaluation API.
func runServer(logger *zap.Logger, calibrated engine.CalibratedConstants, serverConfigLocation string) {
	serverConf, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, calibrated, serverConf.UploadSizeBytes(), version)
	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("HTTP server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
