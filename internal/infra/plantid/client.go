package plantid

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/agri-advisor/internal/domain/disease"
)

const (
	defaultBaseURL = "https://plant.id/api/v3"
	detailFields   = "common_names,description,treatment,cause"
)

// Client calls the plant.id identification API with health assessment.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("plant.id api key cannot be empty")
	}
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Classify sends one image and returns the top plant plus disease matches.
func (c *Client) Classify(ctx context.Context, image []byte, mimeType string) (disease.Classification, error) {
	payload, err := json.Marshal(identifyRequest{
		Images:        []string{fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))},
		SimilarImages: false,
	})
	if err != nil {
		return disease.Classification{}, fmt.Errorf("encode identification request: %w", err)
	}

	query := url.Values{}
	query.Set("details", detailFields)
	query.Set("health", "all")
	endpoint := c.baseURL + "/identification?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return disease.Classification{}, fmt.Errorf("build identification request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return disease.Classification{}, fmt.Errorf("identification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return disease.Classification{}, fmt.Errorf("identification request error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var raw identifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return disease.Classification{}, fmt.Errorf("decode identification response: %w", err)
	}
	return normalize(raw.Result), nil
}

type identifyRequest struct {
	Images        []string `json:"images"`
	SimilarImages bool     `json:"similar_images"`
}

type identifyResponse struct {
	Result result `json:"result"`
}

type result struct {
	Classification suggestionList `json:"classification"`
	IsHealthy      *binaryScore   `json:"is_healthy"`
	Disease        suggestionList `json:"disease"`
}

type suggestionList struct {
	Suggestions []suggestion `json:"suggestions"`
}

type suggestion struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Details     struct {
		CommonNames []string `json:"common_names"`
	} `json:"details"`
}

type binaryScore struct {
	Binary bool `json:"binary"`
}

func normalize(r result) disease.Classification {
	var out disease.Classification
	if len(r.Classification.Suggestions) > 0 {
		top := r.Classification.Suggestions[0]
		out.PlantName = top.Name
		out.PlantProbability = top.Probability
	}
	if r.IsHealthy != nil {
		out.HasHealthSignal = true
		out.IsHealthy = r.IsHealthy.Binary
	}
	for _, s := range r.Disease.Suggestions {
		name := s.Name
		if len(s.Details.CommonNames) > 0 && strings.TrimSpace(s.Details.CommonNames[0]) != "" {
			name = s.Details.CommonNames[0]
		}
		out.Suggestions = append(out.Suggestions, disease.Finding{Name: name, Probability: s.Probability})
	}
	return out
}

var _ disease.Classifier = (*Client)(nil)
