package marketdata

import (
	"context"
	"errors"
)

// Provider defines the interface for fetching historical quotes from an
// external market-data API. The engine only ever reads
// Results[0].HistoricalDataPrice; any other shape is treated as "no data".
type Provider interface {
	// GetQuoteHistory retrieves daily history for a symbol over a coarse range
	GetQuoteHistory(ctx context.Context, symbol, rng, interval string) (*QuoteHistoryResponse, error)

	// Name returns the name of the provider
	Name() string
}

// QuoteHistoryResponse is the raw payload returned by the provider
type QuoteHistoryResponse struct {
	Results []QuoteResult `json:"results"`
}

// QuoteResult holds the per-symbol slice of historical bars
type QuoteResult struct {
	Symbol              string          `json:"symbol"`
	HistoricalDataPrice []HistoricalBar `json:"historicalDataPrice"`
}

// HistoricalBar is one raw daily bar. Date is Unix epoch seconds; open and
// close are optional in the payload and modeled as pointers.
type HistoricalBar struct {
	Date  int64    `json:"date"`
	Close *float64 `json:"close,omitempty"`
	Open  *float64 `json:"open,omitempty"`
}

// UsablePrice returns the bar's price, preferring close and falling back to
// open. The boolean is false when the bar carries neither.
func (b HistoricalBar) UsablePrice() (float64, bool) {
	if b.Close != nil {
		return *b.Close, true
	}
	if b.Open != nil {
		return *b.Open, true
	}
	return 0, false
}

// ProviderError represents errors from provider operations
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + ": " + e.Code + ": " + e.Message
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeUnauthorized      = "unauthorized"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

// Sentinel errors for callers that match by errors.Is
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("quote data not found")
	ErrInvalidData       = errors.New("invalid quote payload")
)

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, err error) ProviderError {
	return ProviderError{Provider: provider, Code: code, Message: message, Err: err}
}
