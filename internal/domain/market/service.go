package market

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/synthetic"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
	"github.com/yanqian/agri-advisor/pkg/util"
)

// Query identifies one price set.
type Query struct {
	Commodity string
	State     string
	District  string
}

// Key is the composite key of the set.
func (q Query) Key() string {
	return strings.ToLower(q.State) + "|" + strings.ToLower(q.Commodity) + "|" + strings.ToLower(q.District)
}

// PriceStore is the durable tier. FindPrices returns the most recent set for
// the query, or an empty slice.
type PriceStore interface {
	FindPrices(ctx context.Context, q Query) ([]agri.PriceRecord, error)
	SavePrices(ctx context.Context, q Query, records []agri.PriceRecord) error
}

// Connectivity reports whether the durable tier can be reached right now.
type Connectivity interface {
	Available() bool
}

// Cache is the in-process tier.
type Cache interface {
	Get(key string) ([]agri.PriceRecord, bool)
	Set(key string, value []agri.PriceRecord)
	Contains(key string) bool
}

// Config drives the price service.
type Config struct {
	FreshnessWindow time.Duration
	PersistTimeout  time.Duration
}

// Service serves deterministic synthetic market prices behind a freshness
// window.
type Service struct {
	cfg    Config
	store  PriceStore
	conn   Connectivity
	cache  Cache
	logger *slog.Logger
	now    func() time.Time
	spawn  util.Runner
}

// NewService wires the price service. store and conn may be nil.
func NewService(cfg Config, store PriceStore, conn Connectivity, cache Cache, logger *slog.Logger) *Service {
	if cfg.FreshnessWindow <= 0 {
		cfg.FreshnessWindow = 30 * time.Minute
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	return &Service{
		cfg:    cfg,
		store:  store,
		conn:   conn,
		cache:  cache,
		logger: logger.With("component", "market.service"),
		now:    util.NowUTC,
		spawn:  util.Background,
	}
}

// GenerateMarketPrices returns the current price set for a commodity in a
// state and optional district. A set younger than the freshness window is
// reused as-is; an older one is replaced by a newly generated set.
func (s *Service) GenerateMarketPrices(ctx context.Context, commodity, state, district string) ([]agri.PriceRecord, error) {
	q := Query{
		Commodity: strings.TrimSpace(commodity),
		State:     strings.TrimSpace(state),
		District:  strings.TrimSpace(district),
	}
	if q.Commodity == "" || q.State == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "commodity and state are required", nil)
	}
	now := s.now()

	if s.durableAvailable() {
		records, err := s.store.FindPrices(ctx, q)
		switch {
		case err != nil:
			s.logger.Warn("price store lookup failed, using in-process tier", "commodity", q.Commodity, "state", q.State, "error", err)
		case s.fresh(records, now):
			s.cache.Set(q.Key(), records)
			return records, nil
		}
	}

	if records, ok := s.cache.Get(q.Key()); ok && s.fresh(records, now) {
		return records, nil
	}

	records := synthetic.GenerateMarketPrices(q.Commodity, q.State, q.District, util.DaysSinceEpoch(now), now)
	s.cache.Set(q.Key(), records)
	s.persist(ctx, q, records)
	s.logger.Debug("generated price set", "commodity", q.Commodity, "state", q.State, "district", q.District, "records", len(records))
	return records, nil
}

func (s *Service) fresh(records []agri.PriceRecord, now time.Time) bool {
	if len(records) == 0 {
		return false
	}
	oldest := records[0].FetchedAt
	for _, rec := range records[1:] {
		if rec.FetchedAt.Before(oldest) {
			oldest = rec.FetchedAt
		}
	}
	return now.Sub(oldest) < s.cfg.FreshnessWindow
}

func (s *Service) persist(ctx context.Context, q Query, records []agri.PriceRecord) {
	if !s.durableAvailable() {
		return
	}
	detached := context.WithoutCancel(ctx)
	s.spawn(func() {
		writeCtx, cancel := context.WithTimeout(detached, s.cfg.PersistTimeout)
		defer cancel()
		if err := s.store.SavePrices(writeCtx, q, records); err != nil {
			s.logger.Warn("price store write failed", "commodity", q.Commodity, "state", q.State, "error", err)
		}
	})
}

func (s *Service) durableAvailable() bool {
	return s.store != nil && s.conn != nil && s.conn.Available()
}
