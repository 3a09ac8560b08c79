package advisory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectGathersBothPhases(t *testing.T) {
	store := sampleStore()
	fc := NewAggregator(store, discardLogger()).Collect(context.Background(), "farmer-1")

	require.NotNil(t, fc.Farmer)
	require.Len(t, fc.Farms, 2)
	require.Len(t, fc.Activities, 2)
	require.Len(t, fc.Schemes, 2)
	require.Len(t, fc.Officers, 1)
	require.Equal(t, []string{"Kerala"}, store.schemeStates)
}

func TestCollectUnknownFarmerIsEmpty(t *testing.T) {
	store := sampleStore()
	fc := NewAggregator(store, discardLogger()).Collect(context.Background(), "nobody")

	require.Nil(t, fc.Farmer)
	require.Empty(t, fc.Schemes)
	require.Empty(t, fc.Officers)
	require.Empty(t, store.schemeStates)
}

func TestCollectToleratesSectionFailures(t *testing.T) {
	store := sampleStore()
	store.failSchemes = true
	store.failOfficers = true

	fc := NewAggregator(store, discardLogger()).Collect(context.Background(), "farmer-1")
	require.NotNil(t, fc.Farmer)
	require.Len(t, fc.Farms, 2)
	require.Empty(t, fc.Schemes)
	require.Empty(t, fc.Officers)
}

func TestCollectProfileFailureSkipsRegionalPhase(t *testing.T) {
	store := sampleStore()
	store.failProfile = true

	fc := NewAggregator(store, discardLogger()).Collect(context.Background(), "farmer-1")
	require.Nil(t, fc.Farmer)
	require.Len(t, fc.Farms, 2)
	require.Empty(t, store.schemeStates)
}

func TestCollectNilStore(t *testing.T) {
	fc := NewAggregator(nil, discardLogger()).Collect(context.Background(), "farmer-1")
	require.Equal(t, FarmerContext{}, fc)
}

func TestCollectCapsSections(t *testing.T) {
	store := sampleStore()
	for len(store.activities) < 20 {
		store.activities = append(store.activities, store.activities[0])
	}
	fc := NewAggregator(store, discardLogger()).Collect(context.Background(), "farmer-1")
	require.Len(t, fc.Activities, ActivityLimit)
}
