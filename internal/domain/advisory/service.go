package advisory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
	"github.com/yanqian/agri-advisor/pkg/metrics"
)

// Feature names reported with each model attempt.
const (
	FeatureChat    = "advisory.chat"
	FeatureSchemes = "advisory.schemes"
)

const schemeFallbackQuestion = "which government schemes can I apply for?"

// Service answers farmer questions with generative models grounded in the
// farmer's records, falling back to rule-based replies.
type Service interface {
	AnswerFarmerQuestion(ctx context.Context, req Request) (Response, error)
	SuggestSchemes(ctx context.Context, req SchemeRequest) (Response, error)
}

type service struct {
	cfg        Config
	aggregator *Aggregator
	runner     modelchain.Runner
	logger     *slog.Logger
}

// NewService is a wire provider for the advisory domain.
func NewService(cfg Config, aggregator *Aggregator, runner modelchain.Runner, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		aggregator: aggregator,
		runner:     runner,
		logger:     logger.With("component", "advisory.service"),
	}
}

func (s *service) AnswerFarmerQuestion(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "message cannot be empty", nil)
	}
	if !s.runner.Configured() {
		return Response{}, apperrors.Wrap(apperrors.CodeConfiguration, "advisory chat has no generative provider configured", nil)
	}

	fc := s.aggregator.Collect(ctx, req.FarmerID)
	language := resolveLanguage(req.Language, fc)

	result, err := s.runner.Run(ctx, modelchain.Request{
		Feature: FeatureChat,
		Models:  s.cfg.ChatModels,
		Prompt:  BuildPrompt(message, fc, language, req.History),
		Config:  s.cfg.Generation,
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeConfiguration) {
			return Response{}, err
		}
		s.logger.Warn("advisory chat falling back to rule-based reply", "farmer_id", req.FarmerID, "error", err)
		return Response{
			Reply:        FallbackReply(message, fc, language),
			UsedFallback: true,
		}, nil
	}

	return Response{
		Reply:      result.Text,
		ModelID:    result.ModelID,
		TokenUsage: usagePtr(result.Usage),
	}, nil
}

func (s *service) SuggestSchemes(ctx context.Context, req SchemeRequest) (Response, error) {
	farmerID := strings.TrimSpace(req.FarmerID)
	if farmerID == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "farmerId is required", nil)
	}
	if !s.runner.Configured() {
		return Response{}, apperrors.Wrap(apperrors.CodeConfiguration, "scheme lookup has no generative provider configured", nil)
	}

	fc := s.aggregator.Collect(ctx, farmerID)
	if fc.Farmer == nil {
		return Response{}, apperrors.Wrap(apperrors.CodeNotFound, "farmer not found", nil)
	}
	language := resolveLanguage(req.Language, fc)

	result, err := s.runner.Run(ctx, modelchain.Request{
		Feature: FeatureSchemes,
		Models:  s.cfg.SchemeModels,
		Prompt:  BuildSchemePrompt(fc, language),
		Config:  s.cfg.Generation,
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeConfiguration) {
			return Response{}, err
		}
		s.logger.Warn("scheme lookup falling back to rule-based reply", "farmer_id", farmerID, "error", err)
		return Response{
			Reply:        FallbackReply(schemeFallbackQuestion, fc, language),
			UsedFallback: true,
			Schemes:      fc.Schemes,
		}, nil
	}

	return Response{
		Reply:      result.Text,
		ModelID:    result.ModelID,
		Schemes:    fc.Schemes,
		TokenUsage: usagePtr(result.Usage),
	}, nil
}

func resolveLanguage(requested string, fc FarmerContext) string {
	if lang := normalizeTerm(requested); lang != "" {
		return lang
	}
	if fc.Farmer != nil {
		if lang := normalizeTerm(fc.Farmer.PreferredLanguage); lang != "" {
			return lang
		}
	}
	return "en"
}

func usagePtr(u metrics.TokenUsage) *metrics.TokenUsage {
	if u.IsZero() {
		return nil
	}
	return &u
}
