package modelchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
	"github.com/yanqian/agri-advisor/pkg/metrics"
)

var errEmptyText = errors.New("model returned empty text")

var _ Runner = (*Orchestrator)(nil)

// Orchestrator runs an ordered list of model identifiers until one answers.
type Orchestrator struct {
	cfg       Config
	generator Generator
	recorder  AttemptRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrchestrator wires the fallback chain runner. A nil generator means the
// generative capability is not configured.
func NewOrchestrator(cfg Config, generator Generator, recorder AttemptRecorder, logger *slog.Logger) *Orchestrator {
	if recorder == nil {
		recorder = NewLogRecorder(logger)
	}
	return &Orchestrator{
		cfg:       cfg,
		generator: generator,
		recorder:  recorder,
		logger:    logger.With("component", "modelchain.orchestrator"),
		now:       time.Now,
	}
}

// Configured reports whether any generative provider is available.
func (o *Orchestrator) Configured() bool {
	return o != nil && o.generator != nil
}

type stateKind int

const (
	stateTrying stateKind = iota
	stateSucceeded
	stateExhausted
)

// chainState is Trying(i), Succeeded(i) or Exhausted.
type chainState struct {
	kind  stateKind
	index int
}

func (s chainState) advance(succeeded bool, total int) chainState {
	if s.kind != stateTrying {
		return s
	}
	if succeeded {
		return chainState{kind: stateSucceeded, index: s.index}
	}
	if s.index+1 >= total {
		return chainState{kind: stateExhausted, index: s.index}
	}
	return chainState{kind: stateTrying, index: s.index + 1}
}

// Run tries req.Models strictly in order, once each, and stops at the first
// non-empty answer.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if !o.Configured() {
		return Result{}, apperrors.Wrap(apperrors.CodeConfiguration, "generative model provider is not configured", nil)
	}
	models := compactModels(req.Models)
	if len(models) == 0 {
		return Result{}, apperrors.Wrap(apperrors.CodeConfiguration, fmt.Sprintf("no models configured for %s", featureName(req.Feature)), nil)
	}

	var (
		attempts = make([]Attempt, 0, len(models))
		usage    metrics.TokenUsage
		lastErr  error
	)
	state := chainState{kind: stateTrying}
	for state.kind == stateTrying {
		attempt := o.attempt(ctx, state.index, models[state.index], req)
		attempts = append(attempts, attempt)
		usage = usage.Add(attempt.Usage)
		o.recorder.RecordAttempt(ctx, featureName(req.Feature), attempt)
		if !attempt.Succeeded {
			lastErr = attempt.Err
		}
		state = state.advance(attempt.Succeeded, len(models))
	}

	if state.kind == stateExhausted {
		o.logger.Warn("all models failed", "feature", featureName(req.Feature), "attempts", len(attempts), "error", lastErr)
		return Result{Attempts: attempts, Usage: usage}, apperrors.Wrap(apperrors.CodeExternalService, "all generative models failed", lastErr)
	}

	winner := attempts[state.index]
	return Result{
		Text:     winner.Text,
		ModelID:  winner.ModelID,
		Attempts: attempts,
		Usage:    usage,
	}, nil
}

func (o *Orchestrator) attempt(ctx context.Context, position int, model string, req Request) Attempt {
	callCtx := ctx
	if o.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.cfg.AttemptTimeout)
		defer cancel()
	}

	started := o.now()
	gen, err := o.generator.Generate(callCtx, GenerateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Config: req.Config,
	})
	attempt := Attempt{
		Position: position,
		ModelID:  model,
		Latency:  o.now().Sub(started),
		Usage:    gen.Usage,
	}
	text := strings.TrimSpace(gen.Text)
	switch {
	case err != nil:
		attempt.Err = err
	case text == "":
		attempt.Err = errEmptyText
	default:
		attempt.Succeeded = true
		attempt.Text = text
	}
	if attempt.Err != nil {
		attempt.ErrorMessage = attempt.Err.Error()
	}
	return attempt
}

func compactModels(models []string) []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		if clean := strings.TrimSpace(m); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func featureName(feature string) string {
	if strings.TrimSpace(feature) == "" {
		return "default"
	}
	return feature
}
