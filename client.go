package tuteliq

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://api.tuteliq.ai/v1"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond

	// minAPIKeyLength guards against obviously truncated keys before any
	// request is made.
	minAPIKeyLength = 16
)

// option is a function that configures the client
type option func(*cfg)

// WithAPIKey sets the API key for the client. API keys are issued from the
// Tuteliq dashboard; every request carries the key as a bearer token.
func WithAPIKey(apiKey string) option {
	return func(c *cfg) {
		c.apiKey = apiKey
	}
}

// WithBaseURL overrides the API base URL. Unless you have been told to use a
// different endpoint, there's no need to set this.
func WithBaseURL(baseURL string) option {
	return func(c *cfg) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-attempt request timeout. If not set, the default
// timeout is 30 seconds. Exceeding it yields a retryable timeout error.
func WithTimeout(timeout time.Duration) option {
	return func(c *cfg) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the total number of attempts a request may use,
// including the first one. The default is 3.
func WithMaxRetries(n int) option {
	return func(c *cfg) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the initial backoff delay. The delay doubles after each
// failed attempt. The default is 500ms.
func WithRetryDelay(d time.Duration) option {
	return func(c *cfg) {
		c.retryDelay = d
	}
}

// WithDisableRetry disables automatic retry of transient failures.
func WithDisableRetry() option {
	return func(c *cfg) {
		c.maxRetries = 1
	}
}

// WithCacheTTL enables the in-process GET response cache with the given
// time-to-live. A TTL of zero (the default) disables caching entirely.
func WithCacheTTL(ttl time.Duration) option {
	return func(c *cfg) {
		c.cacheTTL = ttl
	}
}

// WithHTTPClient injects a custom *http.Client. Its Timeout is overwritten
// with the configured per-attempt timeout.
func WithHTTPClient(hc *http.Client) option {
	return func(c *cfg) {
		c.httpClient = hc
	}
}

// WithRateLimit throttles outgoing attempts client-side to rps requests per
// second with the given burst, so bursty workloads don't trade 429 responses
// for retry sleep.
func WithRateLimit(rps float64, burst int) option {
	return func(c *cfg) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics enables Prometheus metrics on the default registerer.
func WithMetrics() option {
	return func(c *cfg) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsRegistry enables Prometheus metrics on the supplied registerer.
func WithMetricsRegistry(reg prometheus.Registerer) option {
	return func(c *cfg) {
		c.metrics = NewMetricsCollectorWithRegistry(reg)
	}
}

// cfg holds configuration for the Tuteliq client. It is immutable after New
// returns; concurrent calls share it without copying.
type cfg struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	cacheTTL   time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *MetricsCollector
}

// Client is the Tuteliq SDK client. It is safe for concurrent use: calls run
// independent retry loops and synchronize only on the shared response
// metadata and GET cache.
type Client struct {
	config     *cfg
	httpClient *http.Client
	meta       *responseMetadata
	cache      *responseCache
}

// New creates a new Tuteliq client.
func New(options ...option) (*Client, error) {
	config := &cfg{
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}

	for _, option := range options {
		option(config)
	}

	if config.apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if len(config.apiKey) < minAPIKeyLength {
		return nil, ErrAPIKeyTooShort
	}

	parsed, err := url.Parse(config.baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, config.baseURL)
	}

	if config.maxRetries < 1 {
		config.maxRetries = 1
	}

	hc := config.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	hc.Timeout = config.timeout

	return &Client{
		config:     config,
		httpClient: hc,
		meta:       newResponseMetadata(),
		cache:      newResponseCache(),
	}, nil
}

// LastRequestID returns the request id of the most recently completed attempt,
// or ok=false if no request carrying one has completed yet.
func (c *Client) LastRequestID() (string, bool) {
	return c.meta.lastRequestID()
}

// LastLatency returns the wall-clock latency of the most recently completed
// attempt.
func (c *Client) LastLatency() time.Duration {
	return c.meta.lastLatency()
}

// RateLimit returns the rate-limit window reported by the most recent
// response that carried the full rate-limit header group.
func (c *Client) RateLimit() (RateLimitInfo, bool) {
	return c.meta.rateLimitInfo()
}

// Usage returns the monthly usage reported by the most recent response that
// carried the full usage header group.
func (c *Client) Usage() (UsageInfo, bool) {
	return c.meta.usageInfo()
}

// KeyInfo describes the API key returned by ValidateKey.
type KeyInfo struct {
	Valid     bool             `json:"valid"`
	KeyID     string           `json:"key_id"`
	Plan      SubscriptionPlan `json:"plan"`
	ExpiresAt time.Time        `json:"expires_at,omitzero"`
	Scopes    []string         `json:"scopes,omitempty"`
}

// ValidateKey checks the configured API key against the API.
func (c *Client) ValidateKey(ctx context.Context) (*KeyInfo, error) {
	data, err := c.execute(ctx, http.MethodGet, "/auth/validate", nil, nil)
	if err != nil {
		return nil, err
	}
	var info KeyInfo
	if err := decodeResponse(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
