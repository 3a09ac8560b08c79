package modelchain

import (
	"context"
	"log/slog"
)

// LogRecorder writes attempt records to the structured log.
type LogRecorder struct {
	logger *slog.Logger
}

// NewLogRecorder builds the default recorder.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.With("component", "modelchain.attempts")}
}

// RecordAttempt implements AttemptRecorder.
func (r *LogRecorder) RecordAttempt(_ context.Context, feature string, attempt Attempt) {
	if attempt.Succeeded {
		r.logger.Info("model attempt succeeded", "feature", feature, "model", attempt.ModelID, "position", attempt.Position, "latency_ms", attempt.Latency.Milliseconds())
		return
	}
	r.logger.Warn("model attempt failed", "feature", feature, "model", attempt.ModelID, "position", attempt.Position, "latency_ms", attempt.Latency.Milliseconds(), "error", attempt.ErrorMessage)
}

// MultiRecorder fans one record out to several recorders.
type MultiRecorder []AttemptRecorder

// RecordAttempt implements AttemptRecorder.
func (m MultiRecorder) RecordAttempt(ctx context.Context, feature string, attempt Attempt) {
	for _, r := range m {
		if r != nil {
			r.RecordAttempt(ctx, feature, attempt)
		}
	}
}

var (
	_ AttemptRecorder = (*LogRecorder)(nil)
	_ AttemptRecorder = MultiRecorder(nil)
)
