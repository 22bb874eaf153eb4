package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/kevincorvallis/shredders-sub008/internal/cache"
	"github.com/kevincorvallis/shredders-sub008/internal/model"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client is the shared HTTP client for the weather/telemetry providers. Every
// provider gets its own circuit breaker so one flapping API doesn't burn
// retries for the rest, and successful responses are cached briefly since the
// free endpoints update on multi-minute cadences anyway.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	cache      cache.Cache // nil disables response caching
	cacheTTL   time.Duration
	maxRetries int
	retryDelay time.Duration
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a provider client with its own named circuit breaker
func NewClient(name string, cfg model.WeatherConfig, userAgent string, c cache.Cache, logger *zap.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 1 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		cache:      c,
		cacheTTL:   cfg.CacheTTL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// GetJSON fetches url and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	if c.cache != nil {
		if body, found := c.cache.Get(cache.Key(url)); found {
			return json.Unmarshal(body, out)
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.getWithRetry(ctx, url)
	})
	if err != nil {
		return err
	}
	body := result.([]byte)

	if c.cache != nil {
		_ = c.cache.Set(cache.Key(url), body, c.cacheTTL)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(c.retryDelay) * math.Pow(2, float64(attempt-1)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/geo+json,application/json;q=0.9")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Debug("provider request failed",
				zap.String("url", url), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				lastErr = err
				continue
			}
			return body, nil
		}

		_ = resp.Body.Close()
		lastErr = fmt.Errorf("unexpected status: %d", resp.StatusCode)

		// 4xx responses other than 429 won't improve on retry
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
			break
		}
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}
