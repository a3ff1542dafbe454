package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKeys are the keys used for storing values in context
type contextKey string

const (
	requestIDKey contextKey = "request-id"
)

// NewLogger creates and returns a new SugaredLogger configured for the given environment.
// If env is empty, it reads from the APP_ENV environment variable.
// Defaults to production mode if not specified or unrecognized.
//
// Development mode:
//   - Console output with colorized text
//   - Verbose logging (Debug level and above)
//   - Stack traces included
//   - JSON is not used for better readability
//
// Production mode:
//   - JSON output to stdout
//   - Info level and above
//   - No stack traces by default
//   - Optimized for log aggregation systems
func NewLogger(env string) (*zap.SugaredLogger, error) {
	// If env is empty, read from environment variable
	if env == "" {
		env = os.Getenv("APP_ENV")
	}

	var config zap.Config

	switch env {
	case "development", "dev":
		// Development configuration: human-readable, verbose output
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}

	default:
		// Production configuration: JSON output, optimized
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
		// Add caller information for debugging
		config.EncoderConfig.CallerKey = "caller"
		config.EncoderConfig.LevelKey = "level"
		config.EncoderConfig.MessageKey = "message"
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger.Sugar(), nil
}

// WithRequestID injects a RequestID into the given context.
// This ID should be unique per request and used for tracing a single request
// through the system.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ExtractRequestID retrieves the RequestID from the given context.
// Returns an empty string if no RequestID is found.
func ExtractRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// LogGenerationQueued logs that a generation run was handed off to the
// job queue instead of running inline, tagged with the HTTP request
// that triggered it so the eventual worker log can be traced back.
func LogGenerationQueued(logger *zap.SugaredLogger, requestID string, rangeStart, rangeEnd time.Time, jobID string) {
	logger.Infow("shift generation queued",
		"request_id", requestID,
		"range_start", rangeStart.Format("2006-01-02"),
		"range_end", rangeEnd.Format("2006-01-02"),
		"job_id", jobID,
	)
}

// LogGenerationResult logs the outcome of a completed generation run,
// whether it ran inline from the HTTP handler or from the worker.
func LogGenerationResult(logger *zap.SugaredLogger, requestID string, created, skippedExisting, warned int, err error) {
	fields := []interface{}{
		"request_id", requestID,
		"created", created,
		"skipped_existing", skippedExisting,
		"warned", warned,
	}
	if err != nil {
		logger.Errorw("shift generation failed", append(fields, "error", err)...)
		return
	}
	logger.Infow("shift generation completed", fields...)
}
