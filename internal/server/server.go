// Package server exposes the reimbursement engine over a small JSON API so
// calibration tooling does not have to shell out per evaluation.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/travel-reimburse/internal/batch"
	"github.com/iwvelando/travel-reimburse/internal/engine"
	"github.com/iwvelando/travel-reimburse/pkg/constants"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	constants     engine.CalibratedConstants
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the evaluation API.
func NewHandler(logger *zap.Logger, c engine.CalibratedConstants, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, constants: c, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)
	mux.HandleFunc("/api/score", h.handleScore)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)

	return mux
}

type evaluateRequest struct {
	TripDurationDays    int     `json:"tripDurationDays"`
	MilesTraveled       float64 `json:"milesTraveled"`
	TotalReceiptsAmount float64 `json:"totalReceiptsAmount"`
}

type evaluateResponse struct {
	Amount      float64  `json:"amount"`
	Category    string   `json:"category"`
	Adjustments []string `json:"adjustments"`
	Duration    string   `json:"duration"`
}

type scoreResponse struct {
	Cases             int     `json:"cases"`
	ExactMatches      int     `json:"exactMatches"`
	CloseMatches      int     `json:"closeMatches"`
	MeanAbsoluteError float64 `json:"meanAbsoluteError"`
	MaxError          float64 `json:"maxError"`
	MaxErrorCase      int     `json:"maxErrorCase"`
	Duration          string  `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()

	var req evaluateRequest
	body := http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	input, err := engine.NewTripInput(req.TripDurationDays, req.MilesTraveled, req.TotalReceiptsAmount)
	if err != nil {
		h.writeInputError(w, err)
		return
	}

	result, err := engine.Evaluate(input, h.constants)
	if err != nil {
		h.writeInputError(w, err)
		return
	}

	adjustments := make([]string, len(result.Adjustments))
	for i, adjustment := range result.Adjustments {
		adjustments[i] = string(adjustment)
	}

	h.logger.Debug("evaluated trip",
		zap.String("op", "server.handleEvaluate"),
		zap.Int("durationDays", req.TripDurationDays),
		zap.Float64("amount", result.Amount),
	)

	h.writeJSON(w, http.StatusOK, evaluateResponse{
		Amount:      result.Amount,
		Category:    result.Category.String(),
		Adjustments: adjustments,
		Duration:    time.Since(start).String(),
	})
}

func (h *handler) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()

	body := http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	fixtures, err := batch.DecodeFixtures(body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := batch.Score(r.Context(), h.logger, fixtures, h.constants, constants.DefaultBatchWorkers)
	if err != nil {
		var invalid *engine.InvalidInputError
		if errors.As(err, &invalid) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, scoreResponse{
		Cases:             summary.Cases,
		ExactMatches:      summary.ExactMatches,
		CloseMatches:      summary.CloseMatches,
		MeanAbsoluteError: summary.MeanAbsoluteError,
		MaxError:          summary.MaxError,
		MaxErrorCase:      summary.MaxErrorCase,
		Duration:          time.Since(start).String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) writeInputError(w http.ResponseWriter, err error) {
	var invalid *engine.InvalidInputError
	if errors.As(err, &invalid) {
		h.writeError(w, http.StatusBadRequest, invalid.Error())
		return
	}
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
