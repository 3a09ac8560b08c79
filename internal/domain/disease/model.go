package disease

import (
	"context"

	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
)

// Finding is one disease match from the classifier.
type Finding struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// Classification is the classifier's view of one image. Suggestions, when
// present, take precedence over the boolean health signal.
type Classification struct {
	PlantName        string
	PlantProbability float64
	HasHealthSignal  bool
	IsHealthy        bool
	Suggestions      []Finding
}

// Classifier identifies the plant and its diseases in an image.
type Classifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) (Classification, error)
}

// Config selects the disease-insight models.
type Config struct {
	Models []string
	// MinDiseaseProbability ignores weaker suggestions.
	MinDiseaseProbability float64
	Generation            modelchain.GenerationConfig
}

// Request is an image submitted for analysis.
type Request struct {
	Image    []byte
	MimeType string
	Language string
}

// Insight is the three-part advice for a detected disease.
type Insight struct {
	Description string `json:"description"`
	Treatment   string `json:"treatment"`
	Prevention  string `json:"prevention"`
}

// Analysis is always success-shaped once classification succeeds.
type Analysis struct {
	IsHealthy        bool     `json:"isHealthy"`
	PlantName        string   `json:"plantName"`
	PlantProbability float64  `json:"plantProbability"`
	Disease          *Finding `json:"disease,omitempty"`
	Insight          *Insight `json:"insight,omitempty"`
	UsedFallback     bool     `json:"usedFallback"`
	ModelID          string   `json:"modelId,omitempty"`
}
