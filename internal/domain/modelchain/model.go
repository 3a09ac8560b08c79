package modelchain

import (
	"context"
	"time"

	"github.com/yanqian/agri-advisor/pkg/metrics"
)

// GenerationConfig bounds a single model call.
type GenerationConfig struct {
	MaxOutputTokens int32
	Temperature     float32
}

// GenerateRequest is one call against one model identifier.
type GenerateRequest struct {
	Model  string
	Prompt string
	Config GenerationConfig
}

// Generation is the raw provider output for one call.
type Generation struct {
	Text  string
	Usage metrics.TokenUsage
}

// Generator calls a generative text provider.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Generation, error)
}

// Request describes a fallback chain run for one call site.
type Request struct {
	Feature string
	Models  []string
	Prompt  string
	Config  GenerationConfig
}

// Attempt records the outcome of one model in the chain.
type Attempt struct {
	Position     int                `json:"position"`
	ModelID      string             `json:"modelId"`
	Succeeded    bool               `json:"succeeded"`
	Text         string             `json:"text,omitempty"`
	ErrorMessage string             `json:"errorMessage,omitempty"`
	Latency      time.Duration      `json:"latency"`
	Usage        metrics.TokenUsage `json:"usage"`
	Err          error              `json:"-"`
}

// Result is returned when some model produced text.
type Result struct {
	Text     string
	ModelID  string
	Attempts []Attempt
	Usage    metrics.TokenUsage
}

// AttemptRecorder receives one record per attempt.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, feature string, attempt Attempt)
}

// Config holds orchestrator knobs.
type Config struct {
	// AttemptTimeout caps each model call; zero defers to the provider client.
	AttemptTimeout time.Duration
}

// Runner is the call-site view of the orchestrator.
type Runner interface {
	Configured() bool
	Run(ctx context.Context, req Request) (Result, error)
}
