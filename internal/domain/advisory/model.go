package advisory

import (
	"context"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	"github.com/yanqian/agri-advisor/pkg/metrics"
)

// Section sizes fetched for an advisory context.
const (
	ActivityLimit       = 15
	RecommendationLimit = 10
	SchemeLimit         = 10
	OfficerLimit        = 5
)

// FarmerContext is the request-scoped data used to ground an answer. Any
// section may be empty; Farmer is nil when the farmer is unknown.
type FarmerContext struct {
	Farmer          *agri.FarmerProfile
	Farms           []agri.Farm
	Activities      []agri.Activity
	Recommendations []agri.Recommendation
	Schemes         []agri.Scheme
	Officers        []agri.Officer
}

// Crops lists the farmer's profile crops followed by current farm crops,
// without duplicates.
func (c FarmerContext) Crops() []string {
	var crops []string
	seen := make(map[string]struct{})
	add := func(crop string) {
		key := normalizeTerm(crop)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		crops = append(crops, crop)
	}
	if c.Farmer != nil {
		for _, crop := range c.Farmer.Crops {
			add(crop)
		}
	}
	for _, farm := range c.Farms {
		add(farm.CurrentCrop)
	}
	return crops
}

// Store is the storage collaborator read by the aggregator. Activities and
// recommendations come back newest first. SchemesForState matches the state
// itself or national schemes.
type Store interface {
	FarmerByID(ctx context.Context, farmerID string) (agri.FarmerProfile, bool, error)
	FarmsByFarmer(ctx context.Context, farmerID string) ([]agri.Farm, error)
	RecentActivities(ctx context.Context, farmerID string, limit int) ([]agri.Activity, error)
	RecentRecommendations(ctx context.Context, farmerID string, limit int) ([]agri.Recommendation, error)
	SchemesForState(ctx context.Context, state string, limit int) ([]agri.Scheme, error)
	OfficersInState(ctx context.Context, state string, limit int) ([]agri.Officer, error)
}

// Config selects models per call site.
type Config struct {
	ChatModels   []string
	SchemeModels []string
	Generation   modelchain.GenerationConfig
}

// Request is an advisory chat question.
type Request struct {
	Message  string                  `json:"message"`
	FarmerID string                  `json:"farmerId,omitempty"`
	Language string                  `json:"language,omitempty"`
	History  []agri.ConversationTurn `json:"history,omitempty"`
}

// SchemeRequest asks for schemes relevant to a farmer.
type SchemeRequest struct {
	FarmerID string `json:"farmerId"`
	Language string `json:"language,omitempty"`
}

// Response is always success-shaped; UsedFallback tells whether the reply
// came from the rule-based responder.
type Response struct {
	Reply        string              `json:"reply"`
	UsedFallback bool                `json:"usedFallback"`
	ModelID      string              `json:"modelId,omitempty"`
	Schemes      []agri.Scheme       `json:"schemes,omitempty"`
	TokenUsage   *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
