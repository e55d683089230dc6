// Package config loads skyscout settings from defaults, an optional YAML file,
// SKYSCOUT_* environment variables and bound command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/skyscout/internal/logging"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. SKYSCOUT_API_KEY.
const EnvPrefix = "SKYSCOUT"

// Theme values for ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds all configuration values.
type Config struct {
	API          APIConfig          `mapstructure:"api"`
	Autocomplete AutocompleteConfig `mapstructure:"autocomplete"`
	Search       SearchConfig       `mapstructure:"search"`
	Log          LogConfig          `mapstructure:"log"`
	UI           UIConfig           `mapstructure:"ui"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// APIConfig configures the Sky Scrapper client.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Key       string        `mapstructure:"key"`
	Host      string        `mapstructure:"host"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Retries   int           `mapstructure:"retries"`
	RateLimit float64       `mapstructure:"rate_limit"` // Requests per second, 0 disables
	Burst     int           `mapstructure:"burst"`
}

// AutocompleteConfig tunes the origin and destination fields.
type AutocompleteConfig struct {
	Debounce       time.Duration `mapstructure:"debounce"`
	MinQueryLength int           `mapstructure:"min_query_length"` // Shortest query that triggers a lookup
}

// SearchConfig tunes itinerary submissions.
type SearchConfig struct {
	LatestOnly bool `mapstructure:"latest_only"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds presentation settings for the interactive session.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // Empty disables the /metrics listener
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("api.base_url", "https://sky-scrapper.p.rapidapi.com/api/v1")
	v.SetDefault("api.key", "")
	v.SetDefault("api.host", "sky-scrapper.p.rapidapi.com")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.retries", 1)
	v.SetDefault("api.rate_limit", 0.0)
	v.SetDefault("api.burst", 1)
	v.SetDefault("autocomplete.debounce", 300*time.Millisecond)
	v.SetDefault("autocomplete.min_query_length", 2)
	v.SetDefault("search.latest_only", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("ui.theme", ThemeAuto)
	v.SetDefault("metrics.addr", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional file into v and decodes the result.
// An empty file means defaults, environment and flags only.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.API.Retries < 0 {
		errs = append(errs, errors.New("api.retries must not be negative"))
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, errors.New("api.rate_limit must not be negative"))
	}
	if c.API.Burst < 0 {
		errs = append(errs, errors.New("api.burst must not be negative"))
	}
	if c.Autocomplete.Debounce < 0 {
		errs = append(errs, errors.New("autocomplete.debounce must not be negative"))
	}
	if c.Autocomplete.MinQueryLength < 1 {
		errs = append(errs, errors.New("autocomplete.min_query_length must be at least 1"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	switch strings.ToLower(c.UI.Theme) {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		errs = append(errs, fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme))
	}
	return errors.Join(errs...)
}

// RequireAPIKey fails when no key is configured; commands that hit the real upstream call it.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return fmt.Errorf("missing API key: set %s_API_KEY or api.key in the config file", EnvPrefix)
	}
	return nil
}

// Logger builds the application logger from the log section.
func (c *Config) Logger() *slog.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	format, _ := logging.ParseFormat(c.Log.Format)
	return logging.New(level, format)
}
