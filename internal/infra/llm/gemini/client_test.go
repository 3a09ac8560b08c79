package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	"github.com/yanqian/agri-advisor/pkg/metrics"
)

func TestGenerateReadsTextAndUsage(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Use neem oil spray."}]}}],
			"usageMetadata": {"promptTokenCount": 20, "candidatesTokenCount": 5, "totalTokenCount": 25}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)

	gen, err := client.Generate(context.Background(), modelchain.GenerateRequest{
		Model:  "gemini-2.5-flash",
		Prompt: "aphids on okra",
		Config: modelchain.GenerationConfig{MaxOutputTokens: 512, Temperature: 0.3},
	})
	require.NoError(t, err)
	require.Equal(t, "Use neem oil spray.", gen.Text)
	require.Equal(t, metrics.TokenUsage{PromptTokens: 20, CompletionTokens: 5, TotalTokens: 25}, gen.Usage)
	require.True(t, strings.HasSuffix(path, "gemini-2.5-flash:generateContent"), path)
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exhausted", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), modelchain.GenerateRequest{Model: "gemini-2.5-flash", Prompt: "hi"})
	require.Error(t, err)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "")
	require.Error(t, err)
}
