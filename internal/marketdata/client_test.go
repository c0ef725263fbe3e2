package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func testHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	cfg.RateLimit = 1000
	return NewRateLimitedHTTPClient(cfg, nil)
}

func TestGetQuoteHistorySuccess(t *testing.T) {
	var gotPath, gotRange, gotInterval, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		gotToken = r.URL.Query().Get("token")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"symbol":"AAPL","historicalDataPrice":[{"date":1677679200,"close":151.6},{"date":1677765600,"close":153.2}]}]}`))
	}))
	defer server.Close()

	client := NewClient(testHTTPClient(), server.URL, "secret-token", nil)

	payload, err := client.GetQuoteHistory(context.Background(), "AAPL", "3mo", "1d")
	if err != nil {
		t.Fatalf("GetQuoteHistory failed: %v", err)
	}

	if gotPath != "/api/quote/AAPL" {
		t.Errorf("Expected path /api/quote/AAPL, got %s", gotPath)
	}
	if gotRange != "3mo" || gotInterval != "1d" || gotToken != "secret-token" {
		t.Errorf("Unexpected query params: range=%s interval=%s token=%s", gotRange, gotInterval, gotToken)
	}
	if barCount(payload) != 2 {
		t.Errorf("Expected 2 bars, got %d", barCount(payload))
	}
}

func TestGetQuoteHistoryRequiresSymbol(t *testing.T) {
	client := NewClient(testHTTPClient(), "http://localhost:1", "", nil)

	if _, err := client.GetQuoteHistory(context.Background(), "", "1mo", "1d"); err == nil {
		t.Error("Expected an error for an empty symbol")
	}
}

func TestGetQuoteHistoryStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"Unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"Forbidden", http.StatusForbidden, ErrUnauthorized},
		{"Not found", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(testHTTPClient(), server.URL, "", nil)
			_, err := client.GetQuoteHistory(context.Background(), "AAPL", "1mo", "1d")
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Expected %v, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestGetQuoteHistoryInvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": not json`))
	}))
	defer server.Close()

	client := NewClient(testHTTPClient(), server.URL, "", nil)
	_, err := client.GetQuoteHistory(context.Background(), "AAPL", "1mo", "1d")

	var provErr ProviderError
	if !errors.As(err, &provErr) || provErr.Code != ErrCodeInvalidData {
		t.Errorf("Expected an invalid_data provider error, got %v", err)
	}
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 2
	httpClient := NewRateLimitedHTTPClient(cfg, nil)

	// server closed up front so every dial fails
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := httpClient.Get(ctx, serverURL); err == nil {
			t.Fatal("Expected a connection error")
		}
	}

	_, err := httpClient.Get(ctx, serverURL)
	if err == nil || !strings.HasPrefix(err.Error(), "circuit breaker open") {
		t.Errorf("Expected the circuit breaker to be open, got %v", err)
	}
}

func TestConcurrentRequestsShareBreakerState(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 3
	httpClient := NewRateLimitedHTTPClient(cfg, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				resp, err := httpClient.Get(ctx, server.URL)
				if err == nil {
					resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()

	_, err := httpClient.Get(ctx, server.URL)
	if err == nil || !strings.HasPrefix(err.Error(), "circuit breaker open") {
		t.Errorf("Expected the circuit breaker to be open, got %v", err)
	}
}
