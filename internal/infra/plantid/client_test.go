package plantid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/domain/disease"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/identification", r.URL.Path)
		require.Equal(t, "all", r.URL.Query().Get("health"))
		require.Equal(t, "secret", r.Header.Get("Api-Key"))

		var body identifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Images, 1)
		require.True(t, strings.HasPrefix(body.Images[0], "data:image/jpeg;base64,"))

		_, _ = w.Write([]byte(`{"result": {
			"classification": {"suggestions": [{"name": "Oryza sativa", "probability": 0.91}]},
			"is_healthy": {"binary": false, "probability": 0.12},
			"disease": {"suggestions": [
				{"name": "Magnaporthe oryzae", "probability": 0.64, "details": {"common_names": ["Rice blast"]}},
				{"name": "nutrient deficiency", "probability": 0.2}
			]}
		}}`))
	}))
	defer srv.Close()

	client, err := NewClient("secret", srv.URL, 0)
	require.NoError(t, err)

	got, err := client.Classify(context.Background(), []byte{1, 2, 3}, "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, disease.Classification{
		PlantName:        "Oryza sativa",
		PlantProbability: 0.91,
		HasHealthSignal:  true,
		Suggestions: []disease.Finding{
			{Name: "Rice blast", Probability: 0.64},
			{Name: "nutrient deficiency", Probability: 0.2},
		},
	}, got)
}

func TestNormalizeWithoutHealthSignal(t *testing.T) {
	got := normalize(result{})
	require.False(t, got.HasHealthSignal)
	require.Empty(t, got.PlantName)
	require.Empty(t, got.Suggestions)
}

func TestClassifyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient("bad", srv.URL, 0)
	require.NoError(t, err)
	_, err = client.Classify(context.Background(), []byte{1}, "image/png")
	require.ErrorContains(t, err, "status=401")
}
