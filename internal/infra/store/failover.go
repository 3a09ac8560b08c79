package store

import (
	"context"
	"log/slog"

	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

// Availability reports whether a backend can be reached right now.
type Availability interface {
	Available() bool
}

// AdvisoryFailover serves farmer records from the durable store while its
// flag is up and from the seeded memory store otherwise. The choice is made on
// every call. A durable read that fails is retried against memory.
type AdvisoryFailover struct {
	primary  advisory.Store
	fallback advisory.Store
	conn     Availability
	logger   *slog.Logger
}

// NewAdvisoryFailover pairs the durable and memory record stores.
func NewAdvisoryFailover(primary, fallback advisory.Store, conn Availability, logger *slog.Logger) *AdvisoryFailover {
	return &AdvisoryFailover{
		primary:  primary,
		fallback: fallback,
		conn:     conn,
		logger:   logger.With("component", "store.failover"),
	}
}

func (f *AdvisoryFailover) FarmerByID(ctx context.Context, farmerID string) (agri.FarmerProfile, bool, error) {
	var found bool
	profile, err := read(ctx, f, "farmer", func(s advisory.Store) (agri.FarmerProfile, error) {
		var (
			p   agri.FarmerProfile
			err error
		)
		p, found, err = s.FarmerByID(ctx, farmerID)
		return p, err
	})
	return profile, found, err
}

func (f *AdvisoryFailover) FarmsByFarmer(ctx context.Context, farmerID string) ([]agri.Farm, error) {
	return read(ctx, f, "farms", func(s advisory.Store) ([]agri.Farm, error) {
		return s.FarmsByFarmer(ctx, farmerID)
	})
}

func (f *AdvisoryFailover) RecentActivities(ctx context.Context, farmerID string, limit int) ([]agri.Activity, error) {
	return read(ctx, f, "activities", func(s advisory.Store) ([]agri.Activity, error) {
		return s.RecentActivities(ctx, farmerID, limit)
	})
}

func (f *AdvisoryFailover) RecentRecommendations(ctx context.Context, farmerID string, limit int) ([]agri.Recommendation, error) {
	return read(ctx, f, "recommendations", func(s advisory.Store) ([]agri.Recommendation, error) {
		return s.RecentRecommendations(ctx, farmerID, limit)
	})
}

func (f *AdvisoryFailover) SchemesForState(ctx context.Context, state string, limit int) ([]agri.Scheme, error) {
	return read(ctx, f, "schemes", func(s advisory.Store) ([]agri.Scheme, error) {
		return s.SchemesForState(ctx, state, limit)
	})
}

func (f *AdvisoryFailover) OfficersInState(ctx context.Context, state string, limit int) ([]agri.Officer, error) {
	return read(ctx, f, "officers", func(s advisory.Store) ([]agri.Officer, error) {
		return s.OfficersInState(ctx, state, limit)
	})
}

func read[T any](ctx context.Context, f *AdvisoryFailover, op string, call func(advisory.Store) (T, error)) (T, error) {
	if f.conn.Available() {
		v, err := call(f.primary)
		if err == nil || ctx.Err() != nil {
			return v, err
		}
		f.logger.Warn("durable read failed, serving memory records", "op", op, "error", err)
	}
	return call(f.fallback)
}

var _ advisory.Store = (*AdvisoryFailover)(nil)
