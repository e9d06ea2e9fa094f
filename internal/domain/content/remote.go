package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/tracing"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// FetchConfig configures remote catalog fetching.
type FetchConfig struct {
	Timeout time.Duration
	Retries int
	// RetryWait is the initial backoff between attempts.
	RetryWait time.Duration
}

// Fetcher downloads catalogs over HTTP. Transient failures are retried;
// a source that keeps failing trips a circuit breaker.
type Fetcher struct {
	client  *resty.Client
	breaker *resilience.Breaker
	logger  *zap.Logger
}

// NewFetcher creates a fetcher.
func NewFetcher(cfg FetchConfig, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 200 * time.Millisecond
	}

	// Pooled transport with sane dial and idle timeouts.
	pooled := retryablehttp.NewClient()
	pooled.Logger = nil

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(max(cfg.Retries, 0)).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(10*cfg.RetryWait).
		SetHeader("User-Agent", "webdesk/1.0").
		SetHeader("Accept", "application/yaml, application/toml, application/json;q=0.9, */*;q=0.1").
		SetTransport(pooled.HTTPClient.Transport).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})

	breaker := resilience.New("remote-catalog", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Fetcher{client: client, breaker: breaker, logger: logger}
}

// Fetch downloads and parses the catalog at rawURL. The format comes from
// the URL extension, then the Content-Type. Remote entries cannot
// reference files.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, e *Enricher) (*Catalog, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: bad url %q", ErrFetch, rawURL)
	}

	resp, err := resilience.Do(f.breaker, func() (*resty.Response, error) {
		req := f.client.R().SetContext(ctx)
		tracing.Inject(ctx, req.Header)

		resp, err := req.Get(rawURL)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("status %d", resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, rawURL, err)
	}

	format, ok := FormatFromPath(u.Path)
	if !ok {
		format, ok = FormatFromContentType(resp.Header().Get("Content-Type"))
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s: cannot tell catalog format", ErrFetch, rawURL)
	}

	f.logger.Debug("Fetched remote catalog",
		zap.String("url", rawURL),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("took", resp.Time()))
	return ParseCatalog(resp.Body(), format, "", e)
}

// BreakerState reports the circuit breaker state.
func (f *Fetcher) BreakerState() resilience.State {
	return f.breaker.State()
}
