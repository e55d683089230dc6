package skyscrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/skyscout/internal/logging"
	"github.com/aretw0/skyscout/pkg/domain"
	"github.com/aretw0/skyscout/pkg/ports"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://sky-scrapper.p.rapidapi.com/api/v1"
	DefaultHost    = "sky-scrapper.p.rapidapi.com"
	DefaultLocale  = "en-US"
	DefaultMarket  = "en-US"
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 1
	DefaultBackoff = 80 * time.Millisecond

	defaultCurrency    = "USD"
	defaultCountryCode = "US"
	defaultSortBy      = "best"

	maxBodyBytes = 8 << 20
)

// Client talks to the Sky Scrapper flights API.
type Client struct {
	apiKey  string
	host    string
	baseURL string
	locale  string
	market  string

	httpClient *http.Client
	timeout    time.Duration
	retries    int
	backoff    time.Duration
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ ports.LookupClient = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (e.g. a fake upstream in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHost sets the X-RapidAPI-Host header value.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = host
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every attempt. Zero disables the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets how many times a transport failure is retried.
// Upstream errors (non-2xx, status false) are never retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithBackoff sets the initial wait between retries; it doubles on each attempt.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// A non-positive rps disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLocale sets the locale sent with place searches.
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// WithMarket sets the market sent with itinerary searches.
func WithMarket(market string) Option {
	return func(c *Client) {
		c.market = market
	}
}

// WithLogger sets the logger. Requests are logged at debug level, retries at warn.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		host:       DefaultHost,
		baseURL:    DefaultBaseURL,
		locale:     DefaultLocale,
		market:     DefaultMarket,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		retries:    DefaultRetries,
		backoff:    DefaultBackoff,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET with retries and returns the body once it has passed the
// envelope check and the named schema.
func (c *Client) get(ctx context.Context, path string, params url.Values, schema, fallback string) (any, error) {
	backoff := c.backoff
	for attempt := 0; ; attempt++ {
		body, err := c.getOnce(ctx, path, params, schema, fallback)
		if err == nil {
			return body, nil
		}
		if !isTransport(err) || attempt >= c.retries || ctx.Err() != nil {
			return nil, err
		}

		c.logger.Warn("Retrying upstream request", "path", path, "attempt", attempt+1, "err", err)
		select {
		case <-ctx.Done():
			return nil, transportError(ctx.Err())
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

func (c *Client) getOnce(ctx context.Context, path string, params url.Values, schema, fallback string) (any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(fmt.Errorf("failed to read response: %w", err))
	}
	c.logger.Debug("Upstream response", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, raw)
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, shapeError(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	if err := validateShape(schemaEnvelope, body); err != nil {
		return nil, shapeError(resp.StatusCode, err)
	}
	envelope, _ := body.(map[string]any)
	if ok, _ := envelope["status"].(bool); !ok {
		msg := payloadMessage(raw)
		if msg == "" {
			msg = fallback
		}
		return nil, &domain.RemoteError{Message: msg, StatusCode: resp.StatusCode}
	}
	if err := validateShape(schema, body); err != nil {
		return nil, shapeError(resp.StatusCode, err)
	}
	return body, nil
}
