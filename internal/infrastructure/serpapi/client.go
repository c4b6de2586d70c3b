package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shoplens/backend/internal/domain"
)

const maxAttempts = 3

// ClientConfig holds the SerpAPI connection settings
type ClientConfig struct {
	APIKey   string
	BaseURL  string
	Engine   string
	Country  string
	Language string
}

// Client handles communication with the SerpAPI shopping search endpoint
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	engine      string
	country     string
	language    string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new SerpAPI client
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Free-tier SerpAPI plans allow roughly 100 searches per hour
	limiter := rate.NewLimiter(rate.Limit(100.0/3600.0), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      config.APIKey,
		baseURL:     config.BaseURL,
		engine:      config.Engine,
		country:     config.Country,
		language:    config.Language,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// FetchRaw runs a shopping search and returns the raw product records from
// every result block, up to roughly limit items per block as hinted to the
// provider. Transient failures are retried with exponential backoff.
func (c *Client) FetchRaw(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	params := url.Values{}
	params.Add("engine", c.engine)
	params.Add("q", query)
	params.Add("api_key", c.apiKey)
	params.Add("gl", c.country)
	params.Add("hl", c.language)
	params.Add("num", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn("serpapi request failed",
				zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			if attempt < maxAttempts {
				time.Sleep(exponentialBackoff(attempt))
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.logger.Warn("serpapi returned non-OK status",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
			if attempt < maxAttempts {
				time.Sleep(exponentialBackoff(attempt))
			}
			continue
		}

		var searchResp domain.ShoppingResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("%w: decode: %v", domain.ErrUpstreamFailure, err)
		}
		if searchResp.Error != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamFailure, searchResp.Error)
		}

		items := CollectItems(&searchResp)
		c.logger.Debug("serpapi search completed",
			zap.String("query", query),
			zap.Int("items", len(items)))
		return items, nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopLens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	return resp, nil
}

// exponentialBackoff returns the sleep before retry attempt+1: 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}
