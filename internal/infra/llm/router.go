package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
)

// Router sends each model id to the provider that serves it: gpt-*, o*
// and openai/* go to OpenAI, everything else to Gemini.
type Router struct {
	gemini modelchain.Generator
	openai modelchain.Generator
}

// NewRouter returns nil when neither provider is configured, which the
// orchestrator reports as a configuration error.
func NewRouter(gemini, openai modelchain.Generator) modelchain.Generator {
	if gemini == nil && openai == nil {
		return nil
	}
	return &Router{gemini: gemini, openai: openai}
}

// Generate implements modelchain.Generator.
func (r *Router) Generate(ctx context.Context, req modelchain.GenerateRequest) (modelchain.Generation, error) {
	provider, target := r.gemini, "gemini"
	if IsOpenAIModel(req.Model) {
		provider, target = r.openai, "openai"
	}
	if provider == nil {
		return modelchain.Generation{}, apperrors.Wrap(apperrors.CodeConfiguration, fmt.Sprintf("%s provider is not configured for model %s", target, req.Model), nil)
	}
	return provider.Generate(ctx, req)
}

// IsOpenAIModel reports whether a model id belongs to OpenAI.
func IsOpenAIModel(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	switch {
	case strings.HasPrefix(m, "openai/"), strings.HasPrefix(m, "gpt-"):
		return true
	case len(m) > 1 && m[0] == 'o' && m[1] >= '0' && m[1] <= '9':
		return true
	default:
		return false
	}
}
