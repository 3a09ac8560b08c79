package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/infra/config"
)

func TestAppRunStopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	cfg := &config.Config{HTTP: config.HTTPConfig{Address: addr}}
	server := &http.Server{Addr: addr, Handler: http.NewServeMux()}
	app := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestShutdownGrace(t *testing.T) {
	app := NewApp(&config.Config{HTTP: config.HTTPConfig{WriteTimeout: 90 * time.Second}}, slog.New(slog.NewTextHandler(io.Discard, nil)), &http.Server{})
	require.Equal(t, 90*time.Second, app.shutdownGrace())

	app.cfg.HTTP.WriteTimeout = time.Second
	require.Equal(t, minShutdownGrace, app.shutdownGrace())
}
