package extension

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

// OfficerStore is the durable tier for officer records.
type OfficerStore interface {
	FindOfficers(ctx context.Context, state, district string, limit int) ([]agri.Officer, error)
	SaveOfficers(ctx context.Context, officers []agri.Officer) error
}

// Connectivity reports whether the durable tier can be reached right now.
type Connectivity interface {
	Available() bool
}

// Config drives officer generation.
type Config struct {
	OfficersPerDistrict int
	PersistTimeout      time.Duration
}

// Service lists extension officers, generating a deterministic roster when
// none has been persisted yet.
type Service struct {
	cfg    Config
	store  OfficerStore
	conn   Connectivity
	logger *slog.Logger
	spawn  util.Runner
}

// NewService wires the officer directory. store and conn may be nil.
func NewService(cfg Config, store OfficerStore, conn Connectivity, logger *slog.Logger) *Service {
	if cfg.OfficersPerDistrict <= 0 {
		cfg.OfficersPerDistrict = 5
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	return &Service{
		cfg:    cfg,
		store:  store,
		conn:   conn,
		logger: logger.With("component", "extension.service"),
		spawn:  util.Background,
	}
}

// GenerateOfficers returns the officers for a state and optional district.
func (s *Service) GenerateOfficers(ctx context.Context, state, district string) ([]agri.Officer, error) {
	state = strings.TrimSpace(state)
	district = strings.TrimSpace(district)
	if state == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "state is required", nil)
	}
	if district == "" {
		district = synthetic.Districts(state)[0]
	}

	if s.durableAvailable() {
		existing, err := s.store.FindOfficers(ctx, state, district, s.cfg.OfficersPerDistrict)
		if err != nil {
			s.logger.Warn("officer store lookup failed, generating roster", "state", state, "district", district, "error", err)
		} else if len(existing) > 0 {
			return existing, nil
		}
	}

	officers := synthetic.GenerateOfficers(state, district, s.cfg.OfficersPerDistrict)
	s.persist(ctx, officers)
	return officers, nil
}

func (s *Service) persist(ctx context.Context, officers []agri.Officer) {
	if !s.durableAvailable() {
		return
	}
	detached := context.WithoutCancel(ctx)
	s.spawn(func() {
		writeCtx, cancel := context.WithTimeout(detached, s.cfg.PersistTimeout)
		defer cancel()
		if err := s.store.SaveOfficers(writeCtx, officers); err != nil {
			s.logger.Warn("officer store write failed", "count", len(officers), "error", err)
		}
	})
}

func (s *Service) durableAvailable() bool {
	return s.store != nil && s.conn != nil && s.conn.Available()
}
