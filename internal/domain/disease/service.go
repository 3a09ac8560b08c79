package disease

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
)

// FeatureInsight is the model-chain feature name for disease insight.
const FeatureInsight = "disease.insight"

// Service analyzes crop images.
type Service interface {
	AnalyzeCropImage(ctx context.Context, req Request) (Analysis, error)
}

type service struct {
	cfg        Config
	classifier Classifier
	runner     modelchain.Runner
	logger     *slog.Logger
}

// NewService is a wire provider for the disease domain.
func NewService(cfg Config, classifier Classifier, runner modelchain.Runner, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		classifier: classifier,
		runner:     runner,
		logger:     logger.With("component", "disease.service"),
	}
}

func (s *service) AnalyzeCropImage(ctx context.Context, req Request) (Analysis, error) {
	if len(req.Image) == 0 {
		return Analysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image cannot be empty", nil)
	}
	mimeType := strings.ToLower(strings.TrimSpace(req.MimeType))
	if !strings.HasPrefix(mimeType, "image/") {
		return Analysis{}, apperrors.Wrap(apperrors.CodeInvalidInput, "file must be an image", nil)
	}
	if s.classifier == nil {
		return Analysis{}, apperrors.Wrap(apperrors.CodeConfiguration, "plant classifier is not configured", nil)
	}

	cls, err := s.classifier.Classify(ctx, req.Image, mimeType)
	if err != nil {
		if apperrors.CodeOf(err) != "" {
			return Analysis{}, err
		}
		return Analysis{}, apperrors.Wrap(apperrors.CodeExternalService, "plant classification failed", err)
	}

	analysis := Analysis{
		PlantName:        cls.PlantName,
		PlantProbability: cls.PlantProbability,
	}
	finding := s.topFinding(cls.Suggestions)
	switch {
	case finding != nil:
		analysis.Disease = finding
	case len(cls.Suggestions) > 0:
		// Only weak or "healthy" suggestions: the list still decides.
		analysis.IsHealthy = true
	case cls.HasHealthSignal:
		analysis.IsHealthy = cls.IsHealthy
	default:
		analysis.IsHealthy = true
	}
	s.logger.Info("crop image classified", "plant", cls.PlantName, "healthy", analysis.IsHealthy, "suggestions", len(cls.Suggestions))

	if analysis.Disease == nil {
		return analysis, nil
	}

	language := req.Language
	if strings.TrimSpace(language) == "" {
		language = "en"
	}
	result, err := s.insight(ctx, cls.PlantName, analysis.Disease.Name, language)
	if err != nil {
		s.logger.Warn("disease insight falling back to static advice", "disease", analysis.Disease.Name, "error", err)
		insight := StaticInsight(cls.PlantName, analysis.Disease.Name)
		analysis.Insight = &insight
		analysis.UsedFallback = true
		return analysis, nil
	}
	insight := ParseInsight(result.Text)
	analysis.Insight = &insight
	analysis.ModelID = result.ModelID
	return analysis, nil
}

func (s *service) insight(ctx context.Context, plant, diseaseName, language string) (modelchain.Result, error) {
	if s.runner == nil {
		return modelchain.Result{}, apperrors.Wrap(apperrors.CodeConfiguration, "disease insight models are not configured", nil)
	}
	return s.runner.Run(ctx, modelchain.Request{
		Feature: FeatureInsight,
		Models:  s.cfg.Models,
		Prompt:  BuildInsightPrompt(plant, diseaseName, language),
		Config:  s.cfg.Generation,
	})
}

func (s *service) topFinding(suggestions []Finding) *Finding {
	candidates := make([]Finding, 0, len(suggestions))
	for _, f := range suggestions {
		name := strings.TrimSpace(f.Name)
		if name == "" || strings.EqualFold(name, "healthy") {
			continue
		}
		if f.Probability < s.cfg.MinDiseaseProbability {
			continue
		}
		candidates = append(candidates, Finding{Name: name, Probability: f.Probability})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Probability > candidates[j].Probability
	})
	return &candidates[0]
}

// BuildInsightPrompt asks for the three marked sections ParseInsight reads.
func BuildInsightPrompt(plant, diseaseName, language string) string {
	if strings.TrimSpace(plant) == "" {
		plant = "crop"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "A %s plant photographed by a farmer in India shows signs of %s.\n", plant, diseaseName)
	fmt.Fprintf(&b, "Respond in %s.\n\n", advisory.LanguageName(language))
	b.WriteString("Start with a two sentence description of the disease and its symptoms.\n")
	fmt.Fprintf(&b, "Then write %s followed by treatment steps using locally available inputs, organic options first.\n", treatmentMarker)
	fmt.Fprintf(&b, "Then write %s followed by prevention practices for the next season.\n", preventionMarker)
	b.WriteString("Keep each section under 80 words.")
	return b.String()
}

// StaticInsight is the model-free advice returned when every model fails.
func StaticInsight(plant, diseaseName string) Insight {
	if strings.TrimSpace(plant) == "" {
		plant = "the crop"
	}
	return Insight{
		Description: fmt.Sprintf("%s was detected on %s. Confirm the diagnosis with your local Krishi Bhavan before treating.", diseaseName, plant),
		Treatment:   "Remove and destroy badly affected leaves or plants. Apply a recommended fungicide or bio-control agent such as Trichoderma or Pseudomonas only as advised by an extension officer.",
		Prevention:  "Use certified disease-free seed, keep fields well drained, avoid excess nitrogen, rotate crops and inspect plants every week.",
	}
}
