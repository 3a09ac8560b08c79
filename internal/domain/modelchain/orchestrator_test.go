package modelchain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
	"github.com/yanqian/agri-advisor/pkg/metrics"
)

func TestOrchestratorStopsAtFirstSuccess(t *testing.T) {
	gen := &scriptedGenerator{
		outcomes: map[string]scriptedOutcome{
			"model-a": {err: errors.New("quota exceeded")},
			"model-b": {err: errors.New("503 unavailable")},
			"model-c": {text: "  use neem oil  ", usage: metrics.TokenUsage{PromptTokens: 10, TotalTokens: 14}},
			"model-d": {text: "never reached"},
		},
	}
	rec := &captureRecorder{}
	orch := NewOrchestrator(Config{}, gen, rec, discardLogger())

	res, err := orch.Run(context.Background(), Request{
		Feature: "chat",
		Models:  []string{"model-a", "model-b", "model-c", "model-d"},
		Prompt:  "hello",
		Config:  GenerationConfig{MaxOutputTokens: 256, Temperature: 0.4},
	})
	require.NoError(t, err)
	require.Equal(t, "use neem oil", res.Text)
	require.Equal(t, "model-c", res.ModelID)
	require.Len(t, res.Attempts, 3)
	require.Equal(t, []string{"model-a", "model-b", "model-c"}, gen.calls)
	require.Equal(t, 14, res.Usage.TotalTokens)

	require.Len(t, rec.attempts, 3)
	require.False(t, rec.attempts[0].Succeeded)
	require.False(t, rec.attempts[1].Succeeded)
	require.True(t, rec.attempts[2].Succeeded)
	require.Equal(t, "chat", rec.features[0])
	for _, req := range gen.requests {
		require.Equal(t, int32(256), req.Config.MaxOutputTokens)
		require.Equal(t, "hello", req.Prompt)
	}
}

func TestOrchestratorExhausted(t *testing.T) {
	last := errors.New("last failure")
	gen := &scriptedGenerator{
		outcomes: map[string]scriptedOutcome{
			"model-a": {err: errors.New("first failure")},
			"model-b": {text: "   "},
			"model-c": {err: last},
		},
	}
	orch := NewOrchestrator(Config{}, gen, nil, discardLogger())

	res, err := orch.Run(context.Background(), Request{Models: []string{"model-a", "model-b", "model-c"}, Prompt: "p"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeExternalService))
	require.ErrorIs(t, err, last)
	require.Len(t, res.Attempts, 3)
	require.ErrorIs(t, res.Attempts[1].Err, errEmptyText)
	require.Equal(t, []string{"model-a", "model-b", "model-c"}, gen.calls)
}

func TestOrchestratorNotConfigured(t *testing.T) {
	orch := NewOrchestrator(Config{}, nil, nil, discardLogger())
	require.False(t, orch.Configured())

	_, err := orch.Run(context.Background(), Request{Models: []string{"model-a"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))

	gen := &scriptedGenerator{}
	orch = NewOrchestrator(Config{}, gen, nil, discardLogger())
	_, err = orch.Run(context.Background(), Request{Models: []string{" ", ""}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))
	require.Empty(t, gen.calls)
}

func TestOrchestratorAttemptTimeout(t *testing.T) {
	gen := &scriptedGenerator{
		outcomes: map[string]scriptedOutcome{
			"slow": {block: true},
			"fast": {text: "ok"},
		},
	}
	orch := NewOrchestrator(Config{AttemptTimeout: 20 * time.Millisecond}, gen, nil, discardLogger())

	res, err := orch.Run(context.Background(), Request{Models: []string{"slow", "fast"}})
	require.NoError(t, err)
	require.Equal(t, "fast", res.ModelID)
	require.ErrorIs(t, res.Attempts[0].Err, context.DeadlineExceeded)
}

func TestChainStateTransitions(t *testing.T) {
	s := chainState{kind: stateTrying}
	s = s.advance(false, 3)
	require.Equal(t, chainState{kind: stateTrying, index: 1}, s)
	s = s.advance(true, 3)
	require.Equal(t, chainState{kind: stateSucceeded, index: 1}, s)
	require.Equal(t, s, s.advance(false, 3))

	s = chainState{kind: stateTrying, index: 2}
	require.Equal(t, chainState{kind: stateExhausted, index: 2}, s.advance(false, 3))
}

type scriptedOutcome struct {
	text  string
	err   error
	usage metrics.TokenUsage
	block bool
}

type scriptedGenerator struct {
	mu       sync.Mutex
	outcomes map[string]scriptedOutcome
	calls    []string
	requests []GenerateRequest
}

func (g *scriptedGenerator) Generate(ctx context.Context, req GenerateRequest) (Generation, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req.Model)
	g.requests = append(g.requests, req)
	out, ok := g.outcomes[req.Model]
	g.mu.Unlock()
	if !ok {
		return Generation{}, errors.New("unknown model")
	}
	if out.block {
		<-ctx.Done()
		return Generation{}, ctx.Err()
	}
	if out.err != nil {
		return Generation{}, out.err
	}
	return Generation{Text: out.text, Usage: out.usage}, nil
}

type captureRecorder struct {
	features []string
	attempts []Attempt
}

func (r *captureRecorder) RecordAttempt(_ context.Context, feature string, attempt Attempt) {
	r.features = append(r.features, feature)
	r.attempts = append(r.attempts, attempt)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
