package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestFlagRefresh(t *testing.T) {
	flag := NewFlag(false)
	require.False(t, flag.Available())

	require.NoError(t, flag.Refresh(context.Background(), pingFunc(func(context.Context) error { return nil })))
	require.True(t, flag.Available())

	err := flag.Refresh(context.Background(), pingFunc(func(context.Context) error { return errors.New("refused") }))
	require.Error(t, err)
	require.False(t, flag.Available())

	flag.Set(true)
	require.NoError(t, flag.Refresh(context.Background(), nil))
	require.False(t, flag.Available())

	var missing *Flag
	require.False(t, missing.Available())
}

func TestHealthCheck(t *testing.T) {
	pgFlag := NewFlag(true)
	valkeyFlag := NewFlag(false)
	health := NewHealth(
		Backend{Name: "postgres", Flag: pgFlag, Pinger: pingFunc(func(context.Context) error { return errors.New("refused") })},
		Backend{Name: "valkey", Flag: valkeyFlag, Pinger: pingFunc(func(context.Context) error { return nil })},
	)

	require.Equal(t, map[string]bool{"postgres": false, "valkey": true}, health.Check(context.Background()))
	require.False(t, pgFlag.Available())
	require.True(t, valkeyFlag.Available())

	require.Empty(t, NewHealth().Check(context.Background()))
}

func TestHealthCheckBoundsEachPing(t *testing.T) {
	flag := NewFlag(true)
	health := NewHealth(Backend{Name: "postgres", Flag: flag, Pinger: pingFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})})
	health.pingTimeout = 10 * time.Millisecond

	require.Equal(t, map[string]bool{"postgres": false}, health.Check(context.Background()))
}
