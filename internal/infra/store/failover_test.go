package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/infra/store/memory"
)

func TestAdvisoryFailoverFollowsFlag(t *testing.T) {
	durable := memory.NewStore()
	durable.Seed(memory.Dataset{Farmers: []agri.FarmerProfile{{ID: "f1", Name: "Ravi (durable)"}}})
	seeded := memory.NewStore()
	seeded.Seed(memory.Dataset{Farmers: []agri.FarmerProfile{{ID: "f1", Name: "Ravi (seed)"}}})

	flag := NewFlag(false)
	health := NewHealth(Backend{Name: "postgres", Flag: flag, Pinger: pingFunc(func(context.Context) error { return nil })})
	records := NewAdvisoryFailover(durable, seeded, flag, discardLogger())
	ctx := context.Background()

	farmer, found, err := records.FarmerByID(ctx, "f1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Ravi (seed)", farmer.Name)

	// The database came up after startup; the next health check brings it back.
	health.Check(ctx)
	farmer, found, err = records.FarmerByID(ctx, "f1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Ravi (durable)", farmer.Name)

	flag.Set(false)
	farmer, _, err = records.FarmerByID(ctx, "f1")
	require.NoError(t, err)
	require.Equal(t, "Ravi (seed)", farmer.Name)
}

func TestAdvisoryFailoverServesMemoryOnDurableError(t *testing.T) {
	seeded := memory.NewStore()
	seeded.Seed(memory.Dataset{
		Schemes: []agri.Scheme{{Name: "PM-KISAN", State: agri.NationalSchemeState, Category: agri.NationalSchemeCategory}},
	})
	broken := &failingStore{err: errors.New("connection reset")}
	records := NewAdvisoryFailover(broken, seeded, NewFlag(true), discardLogger())

	schemes, err := records.SchemesForState(context.Background(), "Kerala", 5)
	require.NoError(t, err)
	require.Len(t, schemes, 1)
	require.Equal(t, 1, broken.calls)
}

func TestAdvisoryFailoverKeepsCancellation(t *testing.T) {
	broken := &failingStore{err: context.Canceled}
	records := NewAdvisoryFailover(broken, memory.NewStore(), NewFlag(true), discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := records.FarmsByFarmer(ctx, "f1")
	require.ErrorIs(t, err, context.Canceled)
}

type failingStore struct {
	err   error
	calls int
}

var _ advisory.Store = (*failingStore)(nil)

func (s *failingStore) FarmerByID(context.Context, string) (agri.FarmerProfile, bool, error) {
	s.calls++
	return agri.FarmerProfile{}, false, s.err
}

func (s *failingStore) FarmsByFarmer(context.Context, string) ([]agri.Farm, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) RecentActivities(context.Context, string, int) ([]agri.Activity, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) RecentRecommendations(context.Context, string, int) ([]agri.Recommendation, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) SchemesForState(context.Context, string, int) ([]agri.Scheme, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) OfficersInState(context.Context, string, int) ([]agri.Officer, error) {
	s.calls++
	return nil, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
