package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	PlantID   PlantIDConfig   `yaml:"plantId"`
	Weather   WeatherConfig   `yaml:"weather"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Valkey    ValkeyConfig    `yaml:"valkey"`
	Market    MarketConfig    `yaml:"market"`
	Extension ExtensionConfig `yaml:"extension"`
	Geo       GeoConfig       `yaml:"geo"`
	Store     StoreConfig     `yaml:"store"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	MaxUploadBytes int64           `yaml:"maxUploadBytes"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool     `yaml:"enabled"`
	RequestsPerMinute int      `yaml:"requestsPerMinute"`
	Burst             int      `yaml:"burst"`
	Exempt            []string `yaml:"exempt"`
}

// RetryConfig configures retries of idempotent GET requests that hit a
// transient upstream failure.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LLMConfig holds provider credentials and the model chain per call site.
type LLMConfig struct {
	GeminiAPIKey    string        `yaml:"geminiApiKey"`
	GeminiBaseURL   string        `yaml:"geminiBaseUrl"`
	OpenAIAPIKey    string        `yaml:"openaiApiKey"`
	OpenAIBaseURL   string        `yaml:"openaiBaseUrl"`
	ChatModels      []string      `yaml:"chatModels"`
	DiseaseModels   []string      `yaml:"diseaseModels"`
	SchemeModels    []string      `yaml:"schemeModels"`
	Temperature     float32       `yaml:"temperature"`
	MaxOutputTokens int32         `yaml:"maxOutputTokens"`
	AttemptTimeout  time.Duration `yaml:"attemptTimeout"`
}

// PlantIDConfig configures the image classifier.
type PlantIDConfig struct {
	APIKey                string        `yaml:"apiKey"`
	BaseURL               string        `yaml:"baseUrl"`
	Timeout               time.Duration `yaml:"timeout"`
	MinDiseaseProbability float64       `yaml:"minDiseaseProbability"`
}

// WeatherConfig configures geocoding and forecasts.
type WeatherConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Timeout     time.Duration `yaml:"timeout"`
	CountryCode string        `yaml:"countryCode"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig enables Valkey as the durable price tier.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// MarketConfig controls synthetic price freshness.
type MarketConfig struct {
	FreshnessWindow time.Duration `yaml:"freshnessWindow"`
}

// ExtensionConfig controls officer roster size.
type ExtensionConfig struct {
	OfficersPerDistrict int `yaml:"officersPerDistrict"`
}

// GeoConfig controls the in-process geocode tier.
type GeoConfig struct {
	CacheTTL time.Duration `yaml:"cacheTtl"`
}

// StoreConfig covers durable-write behavior and local seed data.
type StoreConfig struct {
	SeedFile       string        `yaml:"seedFile"`
	PersistTimeout time.Duration `yaml:"persistTimeout"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	setDuration(&cfg.HTTP.WriteTimeout, "HTTP_WRITE_TIMEOUT")
	setList(&cfg.HTTP.AllowedOrigins, "HTTP_ALLOWED_ORIGINS")
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")
	setBool(&cfg.HTTP.Retry.Enabled, "HTTP_RETRY_ENABLED")
	setInt(&cfg.HTTP.Retry.MaxAttempts, "HTTP_RETRY_MAX_ATTEMPTS")
	setDuration(&cfg.HTTP.Retry.BaseBackoff, "HTTP_RETRY_BASE_BACKOFF")

	setString(&cfg.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.LLM.GeminiBaseURL, "GEMINI_BASE_URL")
	setString(&cfg.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.OpenAIBaseURL, "OPENAI_BASE_URL")
	setList(&cfg.LLM.ChatModels, "LLM_CHAT_MODELS")
	setList(&cfg.LLM.DiseaseModels, "LLM_DISEASE_MODELS")
	setList(&cfg.LLM.SchemeModels, "LLM_SCHEME_MODELS")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_OUTPUT_TOKENS"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.LLM.MaxOutputTokens = int32(parsed)
		}
	}
	setDuration(&cfg.LLM.AttemptTimeout, "LLM_ATTEMPT_TIMEOUT")

	setString(&cfg.PlantID.APIKey, "PLANT_ID_API_KEY")
	setString(&cfg.PlantID.BaseURL, "PLANT_ID_BASE_URL")
	setString(&cfg.Weather.APIKey, "OPENWEATHER_API_KEY")
	setString(&cfg.Weather.BaseURL, "OPENWEATHER_BASE_URL")

	setString(&cfg.Postgres.DSN, "POSTGRES_DSN")
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	setBool(&cfg.Valkey.Enabled, "VALKEY_ENABLED")
	setString(&cfg.Valkey.Addr, "VALKEY_ADDR")

	setDuration(&cfg.Market.FreshnessWindow, "MARKET_FRESHNESS_WINDOW")
	setInt(&cfg.Extension.OfficersPerDistrict, "EXTENSION_OFFICERS_PER_DISTRICT")
	setDuration(&cfg.Geo.CacheTTL, "GEO_CACHE_TTL")
	setString(&cfg.Store.SeedFile, "STORE_SEED_FILE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

// setList reads a comma separated list, keeping order.
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   150 * time.Second,
			MaxUploadBytes: 8 << 20,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
				Exempt:            []string{"/healthz"},
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 200 * time.Millisecond,
				Exclude: []string{
					"/healthz",
				},
			},
		},
		LLM: LLMConfig{
			ChatModels:      []string{"gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-flash", "gpt-4o-mini"},
			DiseaseModels:   []string{"gemini-2.5-flash", "gemini-2.0-flash", "gpt-4o-mini"},
			SchemeModels:    []string{"gemini-2.0-flash", "gemini-2.5-flash"},
			Temperature:     0.4,
			MaxOutputTokens: 1024,
			AttemptTimeout:  20 * time.Second,
		},
		PlantID: PlantIDConfig{
			BaseURL:               "https://plant.id/api/v3",
			Timeout:               30 * time.Second,
			MinDiseaseProbability: 0.1,
		},
		Weather: WeatherConfig{
			BaseURL:     "https://api.openweathermap.org",
			Timeout:     10 * time.Second,
			CountryCode: "IN",
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Valkey: ValkeyConfig{
			Prefix: "agri",
		},
		Market: MarketConfig{
			FreshnessWindow: 30 * time.Minute,
		},
		Extension: ExtensionConfig{
			OfficersPerDistrict: 5,
		},
		Store: StoreConfig{
			PersistTimeout: 5 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use. Missing provider keys
// are allowed; the affected feature reports a configuration error instead.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("http.maxUploadBytes must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxOutputTokens <= 0 {
		return errors.New("llm.maxOutputTokens must be positive")
	}
	if c.LLM.AttemptTimeout <= 0 {
		return errors.New("llm.attemptTimeout must be positive")
	}
	if err := c.validateChainBudgets(); err != nil {
		return err
	}
	if c.PlantID.MinDiseaseProbability < 0 || c.PlantID.MinDiseaseProbability > 1 {
		return errors.New("plantId.minDiseaseProbability must be between 0 and 1")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Market.FreshnessWindow <= 0 {
		return errors.New("market.freshnessWindow must be positive")
	}
	if c.Extension.OfficersPerDistrict <= 0 {
		return errors.New("extension.officersPerDistrict must be positive")
	}
	if c.Geo.CacheTTL < 0 {
		return errors.New("geo.cacheTtl cannot be negative")
	}
	return nil
}

// validateChainBudgets keeps the slowest model chain of each route inside the
// HTTP write timeout. The server does not cancel a handler when the write
// deadline passes, so a fallback reply computed after it never reaches the
// client.
func (c *Config) validateChainBudgets() error {
	if c.HTTP.WriteTimeout <= 0 {
		return nil
	}
	chains := []struct {
		name   string
		models []string
		extra  time.Duration
	}{
		{name: "chat", models: c.LLM.ChatModels},
		{name: "scheme", models: c.LLM.SchemeModels},
		{name: "disease", models: c.LLM.DiseaseModels, extra: c.PlantID.Timeout},
	}
	for _, chain := range chains {
		worst := chain.extra + time.Duration(len(chain.models))*c.LLM.AttemptTimeout
		if worst >= c.HTTP.WriteTimeout {
			return fmt.Errorf("%s chain worst case %s exceeds http.writeTimeout %s", chain.name, worst, c.HTTP.WriteTimeout)
		}
	}
	return nil
}
