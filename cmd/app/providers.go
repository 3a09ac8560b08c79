package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/agri-advisor/internal/domain/advisory"
	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/disease"
	"github.com/yanqian/agri-advisor/internal/domain/extension"
	"github.com/yanqian/agri-advisor/internal/domain/geo"
	"github.com/yanqian/agri-advisor/internal/domain/market"
	"github.com/yanqian/agri-advisor/internal/domain/modelchain"
	"github.com/yanqian/agri-advisor/internal/domain/weather"
	"github.com/yanqian/agri-advisor/internal/infra/config"
	"github.com/yanqian/agri-advisor/internal/infra/llm"
	"github.com/yanqian/agri-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/agri-advisor/internal/infra/llm/gemini"
	"github.com/yanqian/agri-advisor/internal/infra/localcache"
	"github.com/yanqian/agri-advisor/internal/infra/plantid"
	"github.com/yanqian/agri-advisor/internal/infra/store"
	"github.com/yanqian/agri-advisor/internal/infra/store/memory"
	"github.com/yanqian/agri-advisor/internal/infra/store/postgres"
	"github.com/yanqian/agri-advisor/internal/infra/store/valkeystore"
	"github.com/yanqian/agri-advisor/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/agri-advisor/internal/interface/http"
)

// durableStore is the Postgres tier plus its connectivity flag. pg is nil
// when no DSN is configured or the pool cannot be built.
type durableStore struct {
	pg   *postgres.Store
	flag *store.Flag
}

func provideDurableStore(cfg *config.Config, logger *slog.Logger) (*durableStore, func()) {
	d := &durableStore{flag: store.NewFlag(false)}
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, durable tier disabled")
		return d, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, durable tier disabled", "error", err)
		return d, noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, durable tier disabled", "error", err)
		return d, noop
	}
	d.pg = postgres.NewStore(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.flag.Refresh(ctx, d.pg); err != nil {
		// The pool stays open so a later health check can bring the tier back.
		logger.Error("postgres ping failed, durable tier marked unavailable", "error", err)
	} else {
		logger.Info("postgres durable tier enabled")
	}
	return d, d.pg.Close
}

// valkeyTier is the optional Valkey price cache plus its connectivity flag.
// prices is nil when Valkey is disabled or the client cannot be built. A
// failed first ping only lowers the flag; health checks raise it again.
type valkeyTier struct {
	prices *valkeystore.PriceStore
	flag   *store.Flag
}

func provideValkeyTier(cfg *config.Config, logger *slog.Logger) (*valkeyTier, func()) {
	v := &valkeyTier{flag: store.NewFlag(false)}
	if !cfg.Valkey.Enabled {
		return v, func() {}
	}
	client, err := newValkeyClient(cfg)
	if err != nil {
		logger.Error("failed to create valkey client, price cache disabled", "error", err)
		return v, func() {}
	}
	v.prices = valkeystore.NewPriceStore(client, cfg.Valkey.Prefix, cfg.Market.FreshnessWindow)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := v.flag.Refresh(ctx, v.prices); err != nil {
		logger.Error("valkey ping failed, price cache marked unavailable", "addr", cfg.Valkey.Addr, "error", err)
	} else {
		logger.Info("market prices stored in valkey", "addr", cfg.Valkey.Addr)
	}
	return v, client.Close
}

func provideHealth(d *durableStore, v *valkeyTier) *store.Health {
	var backends []store.Backend
	if d.pg != nil {
		backends = append(backends, store.Backend{Name: "postgres", Flag: d.flag, Pinger: d.pg})
	}
	if v.prices != nil {
		backends = append(backends, store.Backend{Name: "valkey", Flag: v.flag, Pinger: v.prices})
	}
	return store.NewHealth(backends...)
}

// provideAdvisoryStore always loads the memory seed. With Postgres configured
// the seed serves requests whenever the durable flag is down.
func provideAdvisoryStore(cfg *config.Config, d *durableStore, logger *slog.Logger) advisory.Store {
	mem := loadSeedStore(cfg, logger)
	if d.pg == nil {
		logger.Info("farmer records served from memory")
		return mem
	}
	return store.NewAdvisoryFailover(d.pg, mem, d.flag, logger)
}

func loadSeedStore(cfg *config.Config, logger *slog.Logger) *memory.Store {
	mem := memory.NewStore()
	path := strings.TrimSpace(cfg.Store.SeedFile)
	if path == "" {
		logger.Info("no seed file configured, memory records are empty")
		return mem
	}
	if err := mem.LoadSeed(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("seed file not found, memory records are empty", "path", path)
		} else {
			logger.Error("failed to load seed file, memory records are empty", "path", path, "error", err)
		}
		return mem
	}
	logger.Info("memory seed loaded", "path", path)
	return mem
}

func provideGenerator(cfg *config.Config, logger *slog.Logger) modelchain.Generator {
	var geminiGen, openaiGen modelchain.Generator
	if strings.TrimSpace(cfg.LLM.GeminiAPIKey) != "" {
		client, err := gemini.NewClient(context.Background(), cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiBaseURL)
		if err != nil {
			logger.Error("gemini client unavailable", "error", err)
		} else {
			geminiGen = client
		}
	}
	if strings.TrimSpace(cfg.LLM.OpenAIAPIKey) != "" {
		client, err := chatgpt.NewClient(cfg.LLM.OpenAIAPIKey, cfg.LLM.OpenAIBaseURL)
		if err != nil {
			logger.Error("openai client unavailable", "error", err)
		} else {
			openaiGen = client
		}
	}
	if geminiGen == nil && openaiGen == nil {
		logger.Warn("no generative provider configured, AI features will report configuration errors")
	}
	return llm.NewRouter(geminiGen, openaiGen)
}

func provideAttemptRecorder(d *durableStore, logger *slog.Logger) modelchain.AttemptRecorder {
	recorders := modelchain.MultiRecorder{modelchain.NewLogRecorder(logger)}
	if d.pg != nil {
		recorders = append(recorders, postgres.NewAttemptLog(d.pg, d.flag, logger))
	}
	return recorders
}

func provideRunner(cfg *config.Config, generator modelchain.Generator, recorder modelchain.AttemptRecorder, logger *slog.Logger) modelchain.Runner {
	return modelchain.NewOrchestrator(modelchain.Config{AttemptTimeout: cfg.LLM.AttemptTimeout}, generator, recorder, logger)
}

func provideGenerationConfig(cfg *config.Config) modelchain.GenerationConfig {
	return modelchain.GenerationConfig{
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Temperature:     cfg.LLM.Temperature,
	}
}

func provideAdvisoryConfig(cfg *config.Config, gen modelchain.GenerationConfig) advisory.Config {
	return advisory.Config{
		ChatModels:   cfg.LLM.ChatModels,
		SchemeModels: cfg.LLM.SchemeModels,
		Generation:   gen,
	}
}

func provideDiseaseConfig(cfg *config.Config, gen modelchain.GenerationConfig) disease.Config {
	return disease.Config{
		Models:                cfg.LLM.DiseaseModels,
		MinDiseaseProbability: cfg.PlantID.MinDiseaseProbability,
		Generation:            gen,
	}
}

func provideClassifier(cfg *config.Config, logger *slog.Logger) disease.Classifier {
	if strings.TrimSpace(cfg.PlantID.APIKey) == "" {
		logger.Warn("plant.id api key not set, disease analysis disabled")
		return nil
	}
	client, err := plantid.NewClient(cfg.PlantID.APIKey, cfg.PlantID.BaseURL, cfg.PlantID.Timeout)
	if err != nil {
		logger.Error("plant.id client unavailable", "error", err)
		return nil
	}
	return client
}

func provideOpenWeatherClient(cfg *config.Config, logger *slog.Logger) *openweather.Client {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("openweather api key not set, geocoding and forecasts disabled")
		return nil
	}
	client, err := openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
	if err != nil {
		logger.Error("openweather client unavailable", "error", err)
		return nil
	}
	return client
}

func provideGeoResolver(cfg *config.Config, d *durableStore, client *openweather.Client, logger *slog.Logger) *geo.Resolver {
	var (
		durable  geo.Store
		geocoder geo.Geocoder
	)
	if d.pg != nil {
		durable = d.pg
	}
	if client != nil {
		geocoder = client
	}
	return geo.NewResolver(geo.Config{
		CountryCode:    cfg.Weather.CountryCode,
		PersistTimeout: cfg.Store.PersistTimeout,
	}, durable, d.flag, localcache.New[agri.Coordinates](cfg.Geo.CacheTTL), geocoder, logger)
}

func provideWeatherService(resolver *geo.Resolver, client *openweather.Client, logger *slog.Logger) weather.Service {
	var forecaster weather.Forecaster
	if client != nil {
		forecaster = client
	}
	return weather.NewService(weather.Config{}, resolver, forecaster, logger)
}

// provideMarketService picks the price backend once: Valkey when enabled,
// else Postgres. Reachability of the chosen backend is re-read per request.
func provideMarketService(cfg *config.Config, d *durableStore, v *valkeyTier, logger *slog.Logger) *market.Service {
	svcCfg := market.Config{
		FreshnessWindow: cfg.Market.FreshnessWindow,
		PersistTimeout:  cfg.Store.PersistTimeout,
	}
	cache := localcache.New[[]agri.PriceRecord](0)

	switch {
	case v.prices != nil:
		return market.NewService(svcCfg, v.prices, v.flag, cache, logger)
	case d.pg != nil:
		return market.NewService(svcCfg, d.pg, d.flag, cache, logger)
	default:
		return market.NewService(svcCfg, nil, nil, cache, logger)
	}
}

func newValkeyClient(cfg *config.Config) (valkey.Client, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return nil, err
	}
	return valkey.NewClient(opt)
}

func provideExtensionService(cfg *config.Config, d *durableStore, logger *slog.Logger) *extension.Service {
	svcCfg := extension.Config{
		OfficersPerDistrict: cfg.Extension.OfficersPerDistrict,
		PersistTimeout:      cfg.Store.PersistTimeout,
	}
	if d.pg == nil {
		return extension.NewService(svcCfg, nil, nil, logger)
	}
	return extension.NewService(svcCfg, d.pg, d.flag, logger)
}

func provideHandler(
	cfg *config.Config,
	advisorySvc advisory.Service,
	diseaseSvc disease.Service,
	weatherSvc weather.Service,
	prices *market.Service,
	officers *extension.Service,
	resolver *geo.Resolver,
	health *store.Health,
	logger *slog.Logger,
) *httpiface.Handler {
	return httpiface.NewHandler(httpiface.HandlerDeps{
		Advisory:       advisorySvc,
		Disease:        diseaseSvc,
		Weather:        weatherSvc,
		Prices:         prices,
		Officers:       officers,
		Resolver:       resolver,
		Health:         health,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
	}, logger)
}
