package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/MarckFp/ppoc-gen-v2/internal/engine"
	"github.com/MarckFp/ppoc-gen-v2/internal/logger"
)

// JobHandlers manages job execution handlers
type JobHandlers struct {
	driver *engine.Driver
	logger *zap.SugaredLogger
}

// NewJobHandlers creates a new job handlers instance
func NewJobHandlers(driver *engine.Driver, logger *zap.SugaredLogger) *JobHandlers {
	return &JobHandlers{driver: driver, logger: logger}
}

// RegisterHandlers registers all job handlers with the Asynq mux
func (h *JobHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeGenerateShifts, h.HandleGenerateShifts)
}

// HandleGenerateShifts handles shift generation jobs
func (h *JobHandlers) HandleGenerateShifts(ctx context.Context, t *asynq.Task) error {
	var payload GenerateShiftsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	h.logger.Infow("executing shift generation job",
		"request_id", payload.CorrelationID,
		"range_start", payload.RangeStart, "range_end", payload.RangeEnd)

	driver := h.driver
	if payload.Seed != 0 {
		cloned := *h.driver
		cloned.Seed = payload.Seed
		driver = &cloned
	}

	summary, err := driver.Generate(ctx, payload.RangeStart, payload.RangeEnd)
	if err != nil {
		logger.LogGenerationResult(h.logger, payload.CorrelationID, 0, 0, 0, err)
		if engine.IsStoreError(err) {
			return fmt.Errorf("shift generation store error: %w", err)
		}
		return fmt.Errorf("shift generation error: %w", asynq.SkipRetry)
	}

	logger.LogGenerationResult(h.logger, payload.CorrelationID, summary.Created, summary.SkippedExisting, summary.Warned, nil)

	return nil
}
