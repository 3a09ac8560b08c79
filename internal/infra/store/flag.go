package store

import (
	"context"
	"sync/atomic"
	"time"
)

// Pinger checks whether a durable backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Flag is the shared connectivity signal for the durable tier. Readers never
// block; it is flipped by startup and health-check pings.
type Flag struct {
	up atomic.Bool
}

// NewFlag returns a flag in the given state.
func NewFlag(up bool) *Flag {
	f := &Flag{}
	f.up.Store(up)
	return f
}

// Available reports the last observed state.
func (f *Flag) Available() bool {
	return f != nil && f.up.Load()
}

// Set records a new state.
func (f *Flag) Set(up bool) {
	f.up.Store(up)
}

// Refresh pings the backend and records the outcome. A nil pinger leaves the
// flag down.
func (f *Flag) Refresh(ctx context.Context, p Pinger) error {
	if p == nil {
		f.Set(false)
		return nil
	}
	err := p.Ping(ctx)
	f.Set(err == nil)
	return err
}

// Backend is one tracked dependency. A nil Pinger keeps its flag down.
type Backend struct {
	Name   string
	Flag   *Flag
	Pinger Pinger
}

// Health refreshes the flags of every tracked backend. Stores read their flag
// on each call, so a backend that comes back is used again after the next
// check without a restart.
type Health struct {
	backends    []Backend
	pingTimeout time.Duration
}

// NewHealth tracks the given backends.
func NewHealth(backends ...Backend) *Health {
	return &Health{backends: backends, pingTimeout: 2 * time.Second}
}

// Check pings every backend and reports which answered.
func (h *Health) Check(ctx context.Context) map[string]bool {
	status := make(map[string]bool, len(h.backends))
	for _, b := range h.backends {
		pingCtx, cancel := context.WithTimeout(ctx, h.pingTimeout)
		_ = b.Flag.Refresh(pingCtx, b.Pinger)
		cancel()
		status[b.Name] = b.Flag.Available()
	}
	return status
}
