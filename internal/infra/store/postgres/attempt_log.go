package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	"github.com/yanqian/agri-advisor/pkg/util"
)

// Connectivity reports whether Postgres can be reached right now.
type Connectivity interface {
	Available() bool
}

// AttemptLog writes one ai_logs row per model attempt without blocking the
// caller.
type AttemptLog struct {
	store   *Store
	conn    Connectivity
	logger  *slog.Logger
	timeout time.Duration
	spawn   util.Runner
}

// NewAttemptLog builds the recorder.
func NewAttemptLog(store *Store, conn Connectivity, logger *slog.Logger) *AttemptLog {
	return &AttemptLog{
		store:   store,
		conn:    conn,
		logger:  logger.With("component", "postgres.attempt_log"),
		timeout: 3 * time.Second,
		spawn:   util.Background,
	}
}

// RecordAttempt implements modelchain.AttemptRecorder.
func (l *AttemptLog) RecordAttempt(ctx context.Context, feature string, a modelchain.Attempt) {
	if l.store == nil || l.conn == nil || !l.conn.Available() {
		return
	}
	detached := context.WithoutCancel(ctx)
	l.spawn(func() {
		writeCtx, cancel := context.WithTimeout(detached, l.timeout)
		defer cancel()
		_, err := l.store.pool.Exec(writeCtx, `
			INSERT INTO ai_logs (id, feature, position, model_id, succeeded, error_message, latency_ms, prompt_tokens, completion_tokens, total_tokens)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.New(), feature, a.Position, a.ModelID, a.Succeeded, a.ErrorMessage, a.Latency.Milliseconds(),
			a.Usage.PromptTokens, a.Usage.CompletionTokens, a.Usage.TotalTokens)
		if err != nil {
			l.logger.Warn("ai log write failed", "feature", feature, "model", a.ModelID, "error", err)
		}
	})
}

var _ modelchain.AttemptRecorder = (*AttemptLog)(nil)
