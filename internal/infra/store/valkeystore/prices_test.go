package valkeystore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/agri-advisor/internal/domain/market"
	"github.com/yanqian/agri-advisor/internal/domain/synthetic"
)

func TestPriceKey(t *testing.T) {
	s := NewPriceStore(nil, "", time.Minute)
	require.Equal(t, "agri:prices:kerala|rice|ernakulam", s.key(market.Query{Commodity: "Rice", State: "Kerala", District: "Ernakulam"}))
}

func TestPriceRoundTrip(t *testing.T) {
	addr := os.Getenv("AGRI_TEST_VALKEY_ADDR")
	if addr == "" {
		t.Skip("AGRI_TEST_VALKEY_ADDR not set")
	}
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	s := NewPriceStore(client, "agri-test", time.Minute)
	ctx := context.Background()
	q := market.Query{Commodity: "Banana", State: "Kerala", District: time.Now().Format("150405.000000")}

	got, err := s.FindPrices(ctx, q)
	require.NoError(t, err)
	require.Empty(t, got)

	want := synthetic.GenerateMarketPrices(q.Commodity, q.State, q.District, 3, time.Now().UTC().Truncate(time.Second))
	require.NoError(t, s.SavePrices(ctx, q, want))

	got, err = s.FindPrices(ctx, q)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
