package skyscout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/skyscout/internal/logging"
	"github.com/aretw0/skyscout/pkg/adapters/skyscrapper"
	"github.com/aretw0/skyscout/pkg/autocomplete"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/ports"
	"github.com/aretw0/skyscout/pkg/search"
)

// App is the high-level entry point: one autocomplete controller and one search
// orchestrator sharing a lookup client.
type App struct {
	client       ports.LookupClient
	autocomplete *autocomplete.Controller
	search       *search.Orchestrator

	apiKey        string
	clientOpts    []skyscrapper.Option
	acOpts        []autocomplete.Option
	searchOpts    []search.Option
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	fieldListener func(autocomplete.FieldSnapshot)
	stateListener func(domain.SearchState)
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithAPIKey sets the Sky Scrapper key used by the default client.
func WithAPIKey(key string) Option {
	return func(a *App) {
		a.apiKey = key
	}
}

// WithClientOptions configures the default Sky Scrapper client.
func WithClientOptions(opts ...skyscrapper.Option) Option {
	return func(a *App) {
		a.clientOpts = append(a.clientOpts, opts...)
	}
}

// WithLookupClient injects a custom client, bypassing the default Sky Scrapper client.
func WithLookupClient(c ports.LookupClient) Option {
	return func(a *App) {
		a.client = c
	}
}

// WithLifecycleHooks registers observability hooks on both controllers.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = a.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithDebounce sets the autocomplete debounce window.
func WithDebounce(d time.Duration) Option {
	return func(a *App) {
		a.acOpts = append(a.acOpts, autocomplete.WithDebounce(d))
	}
}

// WithMinQueryLength sets the shortest query that triggers a place lookup.
func WithMinQueryLength(n int) Option {
	return func(a *App) {
		a.acOpts = append(a.acOpts, autocomplete.WithMinQueryLength(n))
	}
}

// WithNotifier sets the receiver of transient search messages.
func WithNotifier(n ports.Notifier) Option {
	return func(a *App) {
		a.searchOpts = append(a.searchOpts, search.WithNotifier(n))
	}
}

// WithLatestOnly discards the outcome of superseded searches.
func WithLatestOnly() Option {
	return func(a *App) {
		a.searchOpts = append(a.searchOpts, search.WithLatestOnly())
	}
}

// WithClock overrides the clock that decides "today".
func WithClock(clock func() time.Time) Option {
	return func(a *App) {
		a.searchOpts = append(a.searchOpts, search.WithClock(clock))
	}
}

// WithFieldListener observes every autocomplete field change.
func WithFieldListener(fn func(autocomplete.FieldSnapshot)) Option {
	return func(a *App) {
		a.fieldListener = fn
	}
}

// WithStateListener observes every stored SearchState change.
func WithStateListener(fn func(domain.SearchState)) Option {
	return func(a *App) {
		a.stateListener = fn
	}
}

// New wires the controllers. Without WithLookupClient an API key is required.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	if a.client == nil {
		if a.apiKey == "" {
			return nil, errors.New("api key is required when no custom lookup client is provided")
		}
		clientOpts := append([]skyscrapper.Option{skyscrapper.WithLogger(a.logger.With("component", "skyscrapper"))}, a.clientOpts...)
		a.client = skyscrapper.New(a.apiKey, clientOpts...)
	}

	acOpts := append([]autocomplete.Option{
		autocomplete.WithLogger(a.logger.With("component", "autocomplete")),
		autocomplete.WithHooks(a.hooks),
	}, a.acOpts...)
	if a.fieldListener != nil {
		acOpts = append(acOpts, autocomplete.WithListener(a.fieldListener))
	}
	ac, err := autocomplete.New(a.client, acOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create autocomplete: %w", err)
	}
	a.autocomplete = ac

	searchOpts := append([]search.Option{
		search.WithLogger(a.logger.With("component", "search")),
		search.WithHooks(a.hooks),
	}, a.searchOpts...)
	if a.stateListener != nil {
		searchOpts = append(searchOpts, search.WithListener(a.stateListener))
	}
	orch, err := search.New(a.client, ac, searchOpts...)
	if err != nil {
		ac.Close()
		return nil, fmt.Errorf("failed to create search: %w", err)
	}
	a.search = orch

	return a, nil
}

// Autocomplete returns the origin/destination controller.
func (a *App) Autocomplete() *autocomplete.Controller {
	return a.autocomplete
}

// Orchestrator returns the search orchestrator.
func (a *App) Orchestrator() *search.Orchestrator {
	return a.search
}

// Client returns the lookup client shared by both controllers.
func (a *App) Client() ports.LookupClient {
	return a.client
}

// Submit runs a search with the committed places and the form.
func (a *App) Submit(ctx context.Context, form search.Form) (domain.SearchState, error) {
	return a.search.Submit(ctx, form)
}

// Close stops pending lookups.
func (a *App) Close() {
	a.autocomplete.Close()
}
