// Package batch loads fixture files of historical legacy outputs and scores
// the engine's approximation against them.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/iwvelando/travel-reimburse/internal/engine"
	"github.com/iwvelando/travel-reimburse/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fixture is one historical record: the raw trip inputs and the amount the
// legacy system actually paid.
type Fixture struct {
	Input struct {
		TripDurationDays    int     `json:"trip_duration_days"`
		MilesTraveled       float64 `json:"miles_traveled"`
		TotalReceiptsAmount float64 `json:"total_receipts_amount"`
	} `json:"input"`
	ExpectedOutput float64 `json:"expected_output"`
}

// Summary aggregates a scoring run. Exact and close matches use the accuracy
// bands from the calibration analyses (1 cent and 1 dollar respectively).
type Summary struct {
	Cases             int
	ExactMatches      int
	CloseMatches      int
	MeanAbsoluteError float64
	MaxError          float64
	MaxErrorCase      int // index into the fixture list, -1 when empty
}

// LoadFixtures reads a JSON fixture file.
func LoadFixtures(path string) ([]Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeFixtures(f)
}

// DecodeFixtures decodes a JSON fixture list from a reader.
func DecodeFixtures(r io.Reader) ([]Fixture, error) {
	var fixtures []Fixture
	if err := json.NewDecoder(r).Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return fixtures, nil
}

// Score evaluates every fixture and aggregates the accuracy. Evaluations are
// independent, so they run concurrently up to the worker limit over the
// shared read-only constants. A fixture with invalid inputs fails the whole
// run; fixtures are trusted calibration data and a bad record means a bad
// file.
func Score(ctx context.Context, logger *zap.Logger, fixtures []Fixture, c engine.CalibratedConstants, workers int) (Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = constants.DefaultBatchWorkers
	}

	summary := Summary{Cases: len(fixtures), MaxErrorCase: -1}
	if len(fixtures) == 0 {
		return summary, nil
	}

	logger.Debug("scoring fixtures",
		zap.String("op", "batch.Score"),
		zap.Int("cases", len(fixtures)),
		zap.Int("workers", workers),
	)

	amounts := make([]float64, len(fixtures))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, fixture := range fixtures {
		i, fixture := i, fixture
		g.Go(func() error {
			input, err := engine.NewTripInput(
				fixture.Input.TripDurationDays,
				fixture.Input.MilesTraveled,
				fixture.Input.TotalReceiptsAmount,
			)
			if err != nil {
				return fmt.Errorf("fixture %d: %w", i, err)
			}
			result, err := engine.Evaluate(input, c)
			if err != nil {
				return fmt.Errorf("fixture %d: %w", i, err)
			}
			amounts[i] = result.Amount
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{MaxErrorCase: -1}, err
	}

	var totalError float64
	for i, fixture := range fixtures {
		diff := math.Abs(amounts[i] - fixture.ExpectedOutput)
		totalError += diff
		if diff <= constants.ExactMatchTolerance {
			summary.ExactMatches++
		}
		if diff <= constants.CloseMatchTolerance {
			summary.CloseMatches++
		}
		if diff > summary.MaxError {
			summary.MaxError = diff
			summary.MaxErrorCase = i
		}
	}
	summary.MeanAbsoluteError = totalError / float64(len(fixtures))

	logger.Info("scoring complete",
		zap.String("op", "batch.Score"),
		zap.Int("cases", summary.Cases),
		zap.Int("exactMatches", summary.ExactMatches),
		zap.Int("closeMatches", summary.CloseMatches),
		zap.Float64("meanAbsoluteError", summary.MeanAbsoluteError),
		zap.Float64("maxError", summary.MaxError),
	)

	return summary, nil
}
