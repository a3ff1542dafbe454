package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// JobScheduler manages job enqueueing to Asynq
type JobScheduler struct {
	client *asynq.Client
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(redisAddr string) (*JobScheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &JobScheduler{client: client}, nil
}

// Job types
const (
	TypeGenerateShifts = "shifts:generate"
)

// GenerateShiftsPayload represents the payload for a shift generation job
type GenerateShiftsPayload struct {
	RangeStart    time.Time `json:"range_start"`
	RangeEnd      time.Time `json:"range_end"`
	Seed          uint64    `json:"seed,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EnqueueGenerateShifts enqueues a shift generation job for the given range.
// The timeout scales with the size of the range: one generation pass walks
// every day in [RangeStart, RangeEnd], so wider ranges need more headroom.
// correlationID, when non-empty, is the HTTP request ID that triggered the
// enqueue, carried through so the worker's completion log can be traced
// back to it.
func (s *JobScheduler) EnqueueGenerateShifts(
	ctx context.Context,
	rangeStart, rangeEnd time.Time,
	seed uint64,
	correlationID string,
) (*asynq.TaskInfo, error) {
	payload := GenerateShiftsPayload{
		RangeStart:    rangeStart,
		RangeEnd:      rangeEnd,
		Seed:          seed,
		CorrelationID: correlationID,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeGenerateShifts, payloadBytes)

	days := int(rangeEnd.Sub(rangeStart).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	timeout := time.Duration(30+days*2) * time.Second
	if timeout < 2*time.Minute {
		timeout = 2 * time.Minute
	}

	info, err := s.client.EnqueueContext(
		ctx,
		task,
		asynq.MaxRetry(1),
		asynq.Timeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue shift generation job: %w", err)
	}

	return info, nil
}

// Close closes the job scheduler and releases resources
func (s *JobScheduler) Close() error {
	return s.client.Close()
}

// Ping checks that the underlying Redis connection is reachable, backing
// the /api/health/redis endpoint.
func (s *JobScheduler) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// GetTaskInfo retrieves information about a task
func (s *JobScheduler) GetTaskInfo(ctx context.Context, taskID string) (*asynq.TaskInfo, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: s.client.String()})
	defer inspector.Close()

	return inspector.GetTaskInfo(ctx, "default", taskID)
}
