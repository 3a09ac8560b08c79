package disease

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
)

type stubClassifier struct {
	result Classification
	err    error
	calls  int
}

func (c *stubClassifier) Classify(context.Context, []byte, string) (Classification, error) {
	c.calls++
	return c.result, c.err
}

type stubRunner struct {
	text       string
	err        error
	configured bool
	requests   []modelchain.Request
}

func (r *stubRunner) Configured() bool { return r.configured }

func (r *stubRunner) Run(_ context.Context, req modelchain.Request) (modelchain.Result, error) {
	r.requests = append(r.requests, req)
	if r.err != nil {
		return modelchain.Result{}, r.err
	}
	return modelchain.Result{Text: r.text, ModelID: req.Models[0]}, nil
}

func newServiceUnderTest(classifier Classifier, runner modelchain.Runner) Service {
	cfg := Config{Models: []string{"gemini-2.5-flash"}, MinDiseaseProbability: 0.1}
	return NewService(cfg, classifier, runner, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var jpeg = []byte{0xff, 0xd8, 0xff}

func TestAnalyzeDiseasedPlantWithInsight(t *testing.T) {
	classifier := &stubClassifier{result: Classification{
		PlantName:        "Oryza sativa",
		PlantProbability: 0.93,
		HasHealthSignal:  true,
		IsHealthy:        true,
		Suggestions: []Finding{
			{Name: "Leaf blast", Probability: 0.41},
			{Name: "Brown spot", Probability: 0.72},
		},
	}}
	runner := &stubRunner{configured: true, text: "Fungal.\nTREATMENT: Spray.\nPREVENTION: Rotate."}
	svc := newServiceUnderTest(classifier, runner)

	got, err := svc.AnalyzeCropImage(context.Background(), Request{Image: jpeg, MimeType: "image/jpeg"})
	require.NoError(t, err)
	require.False(t, got.IsHealthy, "suggestions override the health flag")
	require.Equal(t, &Finding{Name: "Brown spot", Probability: 0.72}, got.Disease)
	require.Equal(t, &Insight{Description: "Fungal.", Treatment: "Spray.", Prevention: "Rotate."}, got.Insight)
	require.False(t, got.UsedFallback)
	require.Equal(t, "gemini-2.5-flash", got.ModelID)
	require.Len(t, runner.requests, 1)
	require.Equal(t, FeatureInsight, runner.requests[0].Feature)
	require.Contains(t, runner.requests[0].Prompt, "Brown spot")
}

func TestAnalyzeHealthyPlantSkipsModels(t *testing.T) {
	classifier := &stubClassifier{result: Classification{PlantName: "Musa", PlantProbability: 0.8, HasHealthSignal: true, IsHealthy: true}}
	runner := &stubRunner{configured: true}
	svc := newServiceUnderTest(classifier, runner)

	got, err := svc.AnalyzeCropImage(context.Background(), Request{Image: jpeg, MimeType: "image/png"})
	require.NoError(t, err)
	require.True(t, got.IsHealthy)
	require.Nil(t, got.Disease)
	require.Empty(t, runner.requests)
}

func TestAnalyzeHealthSignalWithoutSuggestions(t *testing.T) {
	classifier := &stubClassifier{result: Classification{PlantName: "Musa", HasHealthSignal: true, IsHealthy: false}}
	svc := newServiceUnderTest(classifier, &stubRunner{configured: true})

	got, err := svc.AnalyzeCropImage(context.Background(), Request{Image: jpeg, MimeType: "image/png"})
	require.NoError(t, err)
	require.False(t, got.IsHealthy)
	require.Nil(t, got.Disease)
}

func TestAnalyzeFallsBackToStaticInsight(t *testing.T) {
	classifier := &stubClassifier{result: Classification{PlantName: "Piper nigrum", Suggestions: []Finding{{Name: "Quick wilt", Probability: 0.6}}}}
	runner := &stubRunner{configured: true, err: apperrors.Wrap(apperrors.CodeExternalService, "all generative models failed", errors.New("quota"))}
	svc := newServiceUnderTest(classifier, runner)

	got, err := svc.AnalyzeCropImage(context.Background(), Request{Image: jpeg, MimeType: "image/webp"})
	require.NoError(t, err)
	require.True(t, got.UsedFallback)
	require.Equal(t, StaticInsight("Piper nigrum", "Quick wilt"), *got.Insight)
}

func TestAnalyzeValidation(t *testing.T) {
	classifier := &stubClassifier{}
	svc := newServiceUnderTest(classifier, &stubRunner{configured: true})

	_, err := svc.AnalyzeCropImage(context.Background(), Request{MimeType: "image/jpeg"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.AnalyzeCropImage(context.Background(), Request{Image: jpeg, MimeType: "application/pdf"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, classifier.calls)
}

func TestAnalyzeClassifierFailures(t *testing.T) {
	svc := newServiceUnderTest(nil, &stubRunner{configured: true})
	_, err := svc.AnalyzeCropImage(context.Background(), Request{Image: jpeg, MimeType: "image/jpeg"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))

	svc = newServiceUnderTest(&stubClassifier{err: errors.New("503")}, &stubRunner{configured: true})
	_, err = svc.AnalyzeCropImage(context.Background(), Request{Image: jpeg, MimeType: "image/jpeg"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeExternalService))
}
