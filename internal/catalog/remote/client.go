// Package remote talks to the catalog search service over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"maxgear/internal/catalog"
	"maxgear/internal/domain"
)

const (
	maxPayloadBytes = 8 << 20
	maxErrorBytes   = 1 << 20
)

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	// Name identifies this breaker in metrics and logs
	Name string

	// MaxRequests is the number of requests allowed in the half-open state
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing counts
	Interval time.Duration

	// Timeout is how long the breaker stays open before moving to half-open
	Timeout time.Duration

	// FailureRatio trips the breaker once MinRequests have been seen
	FailureRatio float64
	MinRequests  uint32
}

// Config holds HTTP client configuration
type Config struct {
	BaseURL      string
	Timeout      time.Duration // per attempt
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second, 0 disables limiting
	Burst        int
	Breaker      BreakerConfig
}

// DefaultConfig returns sensible defaults for baseURL
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		Timeout:      10 * time.Second,
		MaxRetries:   1,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		RateLimit:    5,
		Burst:        3,
		Breaker: BreakerConfig{
			Name:         "catalog",
			MaxRequests:  1,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.5,
			MinRequests:  5,
		},
	}
}

// StateHook receives circuit breaker transitions as 0=closed, 1=half-open, 2=open
type StateHook func(name string, state float64)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithStateHook registers a circuit breaker transition hook
func WithStateHook(hook StateHook) Option {
	return func(c *Client) { c.hook = hook }
}

// Client implements catalog.Searcher and catalog.HealthChecker
type Client struct {
	base    *url.URL
	http    *http.Client
	cfg     Config
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
	limiter *rate.Limiter
	logger  *slog.Logger
	hook    StateHook
}

// New creates a catalog client for cfg.BaseURL
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("catalog url %q must be an absolute http(s) url", cfg.BaseURL)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		base:   base,
		cfg:    cfg,
		logger: logger,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   5 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
			Timeout: cfg.Timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	bc := cfg.Breaker
	if bc.Name == "" {
		bc.Name = "catalog"
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
		Name:        bc.Name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= bc.FailureRatio
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if c.hook != nil {
				c.hook(name, stateToFloat(to))
			}
		},
	})

	return c, nil
}

// isSuccessful keeps cancellations and client errors from tripping the breaker
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *catalog.StatusError
	return errors.As(err, &statusErr) && statusErr.IsClientError()
}

// stateToFloat maps gobreaker states to gauge values
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// State returns the current state of the circuit breaker
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// SearchProducts performs GET /products/search?q=<query>
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", catalog.ErrTransport, err)
		}
	}

	items, err := c.breaker.Execute(func() ([]domain.Product, error) {
		return c.search(ctx, query)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: too many failures, try again shortly", catalog.ErrTransport)
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Health performs GET /health
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.JoinPath("health").String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseStatusError(resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBytes))
	return nil
}

func (c *Client) searchURL(query string) string {
	u := c.base.JoinPath("products", "search")
	u.RawQuery = url.Values{"q": {query}}.Encode()
	return u.String()
}

// search runs the request with bounded retries on network errors and 5xx
func (c *Client) search(ctx context.Context, query string) ([]domain.Product, error) {
	endpoint := c.searchURL(query)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", catalog.ErrTransport, ctx.Err())
			}
			c.logger.Debug("retrying catalog search",
				slog.Int("attempt", attempt+1),
				slog.String("request_id", catalog.RequestIDFromContext(ctx)),
				slog.Any("error", lastErr),
			)
		}

		items, retry, err := c.do(ctx, endpoint)
		if err == nil {
			return items, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) backoff(attempt int) time.Duration {
	wait := c.cfg.RetryWaitMin * time.Duration(1<<uint(attempt-1))
	if c.cfg.RetryWaitMax > 0 && wait > c.cfg.RetryWaitMax {
		wait = c.cfg.RetryWaitMax
	}
	return wait
}

// do performs one attempt. The bool reports whether the failure is retryable.
func (c *Client) do(ctx context.Context, endpoint string) ([]domain.Product, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := catalog.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, fmt.Errorf("%w: %w", catalog.ErrTransport, ctxErr)
		}
		return nil, isRetryable(err), fmt.Errorf("%w: %w", catalog.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retry := resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented
		return nil, retry, parseStatusError(resp)
	}

	items, err := decodeProducts(resp.Body)
	return items, false, err
}

// isRetryable determines if a transport error is worth another attempt
func isRetryable(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

// decodeProducts reads a JSON array of products; anything else is malformed
func decodeProducts(r io.Reader) ([]domain.Product, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", catalog.ErrTransport, err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of products", catalog.ErrMalformedPayload)
	}

	var items []domain.Product
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", catalog.ErrMalformedPayload, err)
	}
	if items == nil {
		items = []domain.Product{}
	}
	return items, nil
}

// errorBody covers {"detail": "..."}, {"message": "..."} and
// {"error": {"message": "..."}} error bodies
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// parseStatusError reads a non-2xx response into a *catalog.StatusError
func parseStatusError(resp *http.Response) error {
	statusErr := &catalog.StatusError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	if err != nil || len(data) == 0 {
		return statusErr
	}

	var body errorBody
	if json.Unmarshal(data, &body) != nil {
		return statusErr
	}

	var detail string
	switch {
	case len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil && detail != "":
		statusErr.Message = detail
	case body.Error != nil && body.Error.Message != "":
		statusErr.Message = body.Error.Message
	case body.Message != "":
		statusErr.Message = body.Message
	}
	return statusErr
}
