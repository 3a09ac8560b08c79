package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	"github.com/yanqian/agri-advisor/pkg/metrics"
)

// Client generates text with the Gemini API.
type Client struct {
	client *genai.Client
}

// NewClient builds a Gemini client. baseURL is only set in tests.
func NewClient(ctx context.Context, apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(baseURL) != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(baseURL, "/") + "/"}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

// Generate implements modelchain.Generator.
func (c *Client) Generate(ctx context.Context, req modelchain.GenerateRequest) (modelchain.Generation, error) {
	genCfg := &genai.GenerateContentConfig{}
	if req.Config.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(req.Config.Temperature)
	}
	if req.Config.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = req.Config.MaxOutputTokens
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return modelchain.Generation{}, fmt.Errorf("gemini generate %s: %w", req.Model, err)
	}

	gen := modelchain.Generation{Text: strings.TrimSpace(resp.Text())}
	if u := resp.UsageMetadata; u != nil {
		gen.Usage = metrics.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return gen, nil
}

var _ modelchain.Generator = (*Client)(nil)
