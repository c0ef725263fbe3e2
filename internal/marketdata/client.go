package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/optionsim/internal/metrics"
)

const clientName = "quote_api"

// Client implements Provider against a brapi-style quote history API:
// GET {base}/api/quote/{symbol}?range=...&interval=...
type Client struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	token      string
	logger     *logrus.Logger
}

// NewClient creates a new quote API client
func NewClient(httpClient *RateLimitedHTTPClient, baseURL, token string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      token,
		logger:     logger,
	}
}

// Name returns the name of the provider
func (c *Client) Name() string {
	return clientName
}

// GetQuoteHistory retrieves daily history for a symbol over a coarse range
func (c *Client) GetQuoteHistory(ctx context.Context, symbol, rng, interval string) (*QuoteHistoryResponse, error) {
	if symbol == "" {
		return nil, NewProviderError(clientName, ErrCodeInvalidData, "symbol is required", nil)
	}

	endpoint := fmt.Sprintf("%s/api/quote/%s", c.baseURL, url.PathEscape(symbol))
	query := url.Values{}
	query.Set("range", rng)
	query.Set("interval", interval)
	if c.token != "" {
		query.Set("token", c.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, NewProviderError(clientName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		metrics.RecordProviderRequest(clientName, "error")
		return nil, NewProviderError(clientName, ErrCodeNetworkError, "failed to fetch quote history", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.RecordProviderRequest(clientName, "unauthorized")
		return nil, NewProviderError(clientName, ErrCodeUnauthorized, "invalid API token", ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.RecordProviderRequest(clientName, "rate_limited")
		return nil, NewProviderError(clientName, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	case resp.StatusCode == http.StatusNotFound:
		metrics.RecordProviderRequest(clientName, "not_found")
		return nil, NewProviderError(clientName, ErrCodeNotFound, fmt.Sprintf("no data for symbol %s", symbol), ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		metrics.RecordProviderRequest(clientName, "server_error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewProviderError(clientName, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	var payload QuoteHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.RecordProviderRequest(clientName, "invalid_payload")
		return nil, NewProviderError(clientName, ErrCodeInvalidData, "failed to parse quote history", err)
	}

	metrics.RecordProviderRequest(clientName, "success")
	c.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"range":  rng,
		"bars":   barCount(&payload),
	}).Debug("Fetched quote history")

	return &payload, nil
}

// Ping verifies the provider endpoint is reachable. Used by readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func barCount(payload *QuoteHistoryResponse) int {
	if payload == nil || len(payload.Results) == 0 {
		return 0
	}
	return len(payload.Results[0].HistoricalDataPrice)
}
