package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"prodplan/internal/adapters/flatfile"
	"prodplan/internal/infrastructure/config"
)

// Client fetches price snapshots from the remote feed. All requests go
// through a shared token-bucket limiter so batch fetches stay within the
// feed's rate policy.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	backoffBase time.Duration
}

// NewClient creates a feed client from configuration.
func NewClient(cfg config.FeedConfig) *Client {
	maxAttempts := cfg.Retry.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		maxAttempts: maxAttempts,
		backoffBase: cfg.Retry.BackoffBase,
	}
}

// FetchPrices retrieves all price records for one exchange. Pass the
// universe code to fetch the consolidated reference prices.
func (c *Client) FetchPrices(ctx context.Context, exchangeCode string) ([]flatfile.PriceRecord, error) {
	endpoint := fmt.Sprintf("%s/prices?exchange=%s", c.baseURL, url.QueryEscape(exchangeCode))

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter interrupted: %w", err)
		}

		records, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return records, nil
		}
		lastErr = err

		if attempt < c.maxAttempts {
			backoff := c.backoffBase * time.Duration(1<<(attempt-1))
			log.Printf("feed: fetch attempt %d/%d for %s failed: %v (retrying in %s)",
				attempt, c.maxAttempts, exchangeCode, err, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("failed to fetch prices for %s after %d attempts: %w", exchangeCode, c.maxAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]flatfile.PriceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var records []flatfile.PriceRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}
	return records, nil
}
