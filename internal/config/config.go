package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment override (e.g. LOADOUT_PORT).
const EnvPrefix = "LOADOUT_"

// Config represents the application configuration.
type Config struct {
	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Catalog data configuration
	Catalog CatalogConfig `toml:"catalog"`

	// Randomizer behavior
	Randomizer RandomizerConfig `toml:"randomizer"`

	// Per-client request limiting
	RateLimit RateLimitConfig `toml:"rate_limit" envPrefix:"RATE_LIMIT_"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port" env:"PORT"`
	StaticDir      string   `toml:"static_dir" env:"STATIC_DIR"`           // Directory served at "/" (empty disables)
	AllowedOrigins []string `toml:"allowed_origins" env:"ALLOWED_ORIGINS"` // CORS origins
	ReadTimeout    string   `toml:"read_timeout"`                          // e.g. "15s"
	WriteTimeout   string   `toml:"write_timeout"`                         // e.g. "60s"
	TrustProxy     bool     `toml:"trust_proxy" env:"TRUST_PROXY"`         // Take client IPs from X-Forwarded-For / X-Real-IP
}

// CatalogConfig contains catalog file settings.
type CatalogConfig struct {
	Dir      string `toml:"dir" env:"CATALOG_DIR"`     // Directory holding items/stratagems files
	Watch    bool   `toml:"watch" env:"CATALOG_WATCH"` // Reload on file changes
	Debounce string `toml:"debounce"`                  // Quiet period before reload (e.g. "250ms")
}

// RandomizerConfig contains selection settings.
type RandomizerConfig struct {
	StratagemCount int  `toml:"stratagem_count" env:"STRATAGEM_COUNT"` // Stratagems per loadout
	StrictModes    bool `toml:"strict_modes" env:"STRICT_MODES"`       // Reject ambiguous mode maps
}

// RateLimitConfig contains request limiting settings.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled" env:"ENABLED"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RPS"`
	Burst             int     `toml:"burst" env:"BURST"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode" env:"DEBUG"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           3000,
			StaticDir:      "public",
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			ReadTimeout:    "15s",
			WriteTimeout:   "60s",
			TrustProxy:     false,
		},
		Catalog: CatalogConfig{
			Dir:      "data",
			Watch:    true,
			Debounce: "250ms",
		},
		Randomizer: RandomizerConfig{
			StratagemCount: 4,
			StrictModes:    false,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Load reads the configuration file at path, then applies environment
// overrides. A missing file yields the defaults plus overrides. An empty
// path skips the file entirely.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults stand in for a missing file
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read timeout %q: %w", c.Server.ReadTimeout, err)
	}

	if _, err := time.ParseDuration(c.Server.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write timeout %q: %w", c.Server.WriteTimeout, err)
	}

	if c.Catalog.Dir == "" {
		return fmt.Errorf("catalog directory is required")
	}

	if _, err := time.ParseDuration(c.Catalog.Debounce); err != nil {
		return fmt.Errorf("invalid catalog debounce %q: %w", c.Catalog.Debounce, err)
	}

	if c.Randomizer.StratagemCount <= 0 {
		return fmt.Errorf("stratagem count must be positive: %d", c.Randomizer.StratagemCount)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate limit requests per second must be positive: %v", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate limit burst must be positive: %d", c.RateLimit.Burst)
		}
	}

	return nil
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ReadTimeout)
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.WriteTimeout)
}

// GetCatalogDebounce returns the catalog reload debounce as a duration.
func (c *Config) GetCatalogDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.Debounce)
}
