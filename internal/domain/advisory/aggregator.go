package advisory

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Aggregator gathers a farmer's advisory context from the store.
type Aggregator struct {
	store  Store
	logger *slog.Logger
}

// NewAggregator wires the context aggregator. A nil store yields empty
// contexts.
func NewAggregator(store Store, logger *slog.Logger) *Aggregator {
	return &Aggregator{store: store, logger: logger.With("component", "advisory.aggregator")}
}

// Collect never fails. Sub-fetch errors are logged and leave their section
// empty; an unknown farmer produces an empty context.
func (a *Aggregator) Collect(ctx context.Context, farmerID string) FarmerContext {
	var out FarmerContext
	farmerID = strings.TrimSpace(farmerID)
	if farmerID == "" || a.store == nil {
		return out
	}

	// Each goroutine owns one field of out, so no locking is needed.
	var profile errgroup.Group
	profile.Go(func() error {
		farmer, found, err := a.store.FarmerByID(ctx, farmerID)
		if err != nil {
			a.skip("profile", farmerID, err)
			return nil
		}
		if found {
			out.Farmer = &farmer
		}
		return nil
	})
	profile.Go(func() error {
		farms, err := a.store.FarmsByFarmer(ctx, farmerID)
		if err != nil {
			a.skip("farms", farmerID, err)
			return nil
		}
		out.Farms = farms
		return nil
	})
	profile.Go(func() error {
		activities, err := a.store.RecentActivities(ctx, farmerID, ActivityLimit)
		if err != nil {
			a.skip("activities", farmerID, err)
			return nil
		}
		out.Activities = capSlice(activities, ActivityLimit)
		return nil
	})
	profile.Go(func() error {
		recs, err := a.store.RecentRecommendations(ctx, farmerID, RecommendationLimit)
		if err != nil {
			a.skip("recommendations", farmerID, err)
			return nil
		}
		out.Recommendations = capSlice(recs, RecommendationLimit)
		return nil
	})
	_ = profile.Wait()

	if out.Farmer == nil || strings.TrimSpace(out.Farmer.State) == "" {
		return out
	}
	state := strings.TrimSpace(out.Farmer.State)

	var regional errgroup.Group
	regional.Go(func() error {
		schemes, err := a.store.SchemesForState(ctx, state, SchemeLimit)
		if err != nil {
			a.skip("schemes", farmerID, err)
			return nil
		}
		out.Schemes = capSlice(schemes, SchemeLimit)
		return nil
	})
	regional.Go(func() error {
		officers, err := a.store.OfficersInState(ctx, state, OfficerLimit)
		if err != nil {
			a.skip("officers", farmerID, err)
			return nil
		}
		out.Officers = capSlice(officers, OfficerLimit)
		return nil
	})
	_ = regional.Wait()

	return out
}

func (a *Aggregator) skip(section, farmerID string, err error) {
	a.logger.Warn("advisory context section unavailable", "section", section, "farmer_id", farmerID, "error", err)
}

func capSlice[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
