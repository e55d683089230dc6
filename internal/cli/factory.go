package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/skyscout"
	"github.com/aretw0/skyscout/internal/config"
	"github.com/aretw0/skyscout/internal/logging"
	"github.com/aretw0/skyscout/pkg/adapters/skyscrapper"
	"github.com/aretw0/skyscout/pkg/observability"
	"github.com/aretw0/skyscout/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// AppOptions are host-level choices layered over the loaded configuration.
type AppOptions struct {
	Logger   *slog.Logger
	Notifier ports.Notifier
	Registry prometheus.Registerer // Nil disables metrics hooks
	Debug    bool                  // Adds lifecycle debug logging
	Clock    func() time.Time
}

// NewApp builds the skyscout application with standard CLI conventions.
func NewApp(cfg *config.Config, o AppOptions) (*skyscout.App, error) {
	logger := o.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	opts := []skyscout.Option{
		skyscout.WithLogger(logger),
		skyscout.WithAPIKey(cfg.API.Key),
		skyscout.WithClientOptions(
			skyscrapper.WithBaseURL(cfg.API.BaseURL),
			skyscrapper.WithHost(cfg.API.Host),
			skyscrapper.WithTimeout(cfg.API.Timeout),
			skyscrapper.WithRetries(cfg.API.Retries),
			skyscrapper.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
		),
		skyscout.WithDebounce(cfg.Autocomplete.Debounce),
		skyscout.WithMinQueryLength(cfg.Autocomplete.MinQueryLength),
	}
	if cfg.Search.LatestOnly {
		opts = append(opts, skyscout.WithLatestOnly())
	}
	if o.Notifier != nil {
		opts = append(opts, skyscout.WithNotifier(o.Notifier))
	}
	if o.Clock != nil {
		opts = append(opts, skyscout.WithClock(o.Clock))
	}
	if o.Debug {
		opts = append(opts, skyscout.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	if o.Registry != nil {
		metrics, err := observability.NewMetrics(o.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, skyscout.WithLifecycleHooks(metrics.Hooks()))
	}

	app, err := skyscout.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing skyscout: %w", err)
	}
	return app, nil
}
