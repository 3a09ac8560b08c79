package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
	"github.com/yanqian/agri-advisor/pkg/util"
)

// Store is the durable tier for geocode results.
type Store interface {
	FindGeo(ctx context.Context, district, state string) (agri.GeoCacheEntry, bool, error)
	SaveGeo(ctx context.Context, entry agri.GeoCacheEntry) error
}

// Connectivity reports whether the durable tier can be reached right now.
type Connectivity interface {
	Available() bool
}

// Cache is the in-process tier. Values for a key are deterministic, so
// concurrent writers of the same key cannot diverge.
type Cache interface {
	Get(key string) (agri.Coordinates, bool)
	Set(key string, value agri.Coordinates)
	Contains(key string) bool
}

// Geocoder resolves a free-text place query.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]agri.Coordinates, error)
}

// Config drives the resolver.
type Config struct {
	CountryCode    string
	PersistTimeout time.Duration
}

// Resolver maps (district, state) to coordinates through the durable store,
// the in-process cache and finally the external geocoder.
type Resolver struct {
	cfg      Config
	store    Store
	conn     Connectivity
	cache    Cache
	geocoder Geocoder
	logger   *slog.Logger
	spawn    util.Runner
}

// NewResolver wires the two-tier resolver. store and conn may be nil when no
// durable tier exists.
func NewResolver(cfg Config, store Store, conn Connectivity, cache Cache, geocoder Geocoder, logger *slog.Logger) *Resolver {
	if cfg.CountryCode == "" {
		cfg.CountryCode = "IN"
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	return &Resolver{
		cfg:      cfg,
		store:    store,
		conn:     conn,
		cache:    cache,
		geocoder: geocoder,
		logger:   logger.With("component", "geo.resolver"),
		spawn:    util.Background,
	}
}

// Resolve returns coordinates for a district in a state.
func (r *Resolver) Resolve(ctx context.Context, district, state string) (agri.Coordinates, error) {
	district = strings.TrimSpace(district)
	state = strings.TrimSpace(state)
	if district == "" || state == "" {
		return agri.Coordinates{}, apperrors.Wrap(apperrors.CodeInvalidInput, "district and state are required", nil)
	}

	if coords, ok := r.fromStore(ctx, district, state); ok {
		return coords, nil
	}

	key := cacheKey(district, state)
	if coords, ok := r.cache.Get(key); ok {
		return coords, nil
	}

	if r.geocoder == nil {
		return agri.Coordinates{}, apperrors.Wrap(apperrors.CodeConfiguration, "geocoding provider is not configured", nil)
	}
	matches, err := r.geocoder.Geocode(ctx, fmt.Sprintf("%s,%s,%s", district, state, r.cfg.CountryCode))
	if err != nil {
		return agri.Coordinates{}, apperrors.Wrap(apperrors.CodeExternalService, "geocoding request failed", err)
	}
	if len(matches) == 0 {
		return agri.Coordinates{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("no coordinates found for %s, %s", district, state), nil)
	}

	coords := matches[0]
	r.cache.Set(key, coords)
	r.persist(ctx, agri.GeoCacheEntry{District: district, State: state, Lat: coords.Lat, Lon: coords.Lon})
	return coords, nil
}

func (r *Resolver) fromStore(ctx context.Context, district, state string) (agri.Coordinates, bool) {
	if !r.durableAvailable() {
		return agri.Coordinates{}, false
	}
	entry, found, err := r.store.FindGeo(ctx, district, state)
	if err != nil {
		r.logger.Warn("geo store lookup failed, treating as miss", "district", district, "state", state, "error", err)
		return agri.Coordinates{}, false
	}
	if !found {
		return agri.Coordinates{}, false
	}
	return agri.Coordinates{Lat: entry.Lat, Lon: entry.Lon}, true
}

func (r *Resolver) persist(ctx context.Context, entry agri.GeoCacheEntry) {
	if !r.durableAvailable() {
		return
	}
	detached := context.WithoutCancel(ctx)
	r.spawn(func() {
		writeCtx, cancel := context.WithTimeout(detached, r.cfg.PersistTimeout)
		defer cancel()
		if err := r.store.SaveGeo(writeCtx, entry); err != nil {
			r.logger.Warn("geo store write failed", "district", entry.District, "state", entry.State, "error", err)
		}
	})
}

func (r *Resolver) durableAvailable() bool {
	return r.store != nil && r.conn != nil && r.conn.Available()
}

func cacheKey(district, state string) string {
	return strings.ToLower(district) + "|" + strings.ToLower(state)
}
