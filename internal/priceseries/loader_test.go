package priceseries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourusername/optionsim/internal/marketdata"
	"github.com/yourusername/optionsim/internal/models"
)

type fakeProvider struct {
	payload  *marketdata.QuoteHistoryResponse
	err      error
	lastRng  string
	lastSym  string
	lastIntv string
}

func (f *fakeProvider) GetQuoteHistory(ctx context.Context, symbol, rng, interval string) (*marketdata.QuoteHistoryResponse, error) {
	f.lastSym = symbol
	f.lastRng = rng
	f.lastIntv = interval
	return f.payload, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func fptr(v float64) *float64 { return &v }

func bar(date time.Time, close, open *float64) marketdata.HistoricalBar {
	return marketdata.HistoricalBar{Date: date.Unix(), Close: close, Open: open}
}

func payloadWith(bars ...marketdata.HistoricalBar) *marketdata.QuoteHistoryResponse {
	return &marketdata.QuoteHistoryResponse{
		Results: []marketdata.QuoteResult{{Symbol: "AAPL", HistoricalDataPrice: bars}},
	}
}

func TestRangeForStart(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		daysBack int
		expected string
	}{
		{"Recent start", 20, "1mo"},
		{"One month boundary", 31, "1mo"},
		{"Quarter", 60, "3mo"},
		{"Half year", 120, "6mo"},
		{"Year", 300, "1y"},
		{"Two years", 500, "2y"},
		{"Five years", 1200, "5y"},
		{"Ancient history", 4000, "max"},
		{"Future start", -10, "1mo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := now.AddDate(0, 0, -tt.daysBack)
			if got := rangeForStart(now, start); got != tt.expected {
				t.Errorf("rangeForStart(%d days back) = %s, expected %s", tt.daysBack, got, tt.expected)
			}
		})
	}
}

func TestLoadRequiresSymbol(t *testing.T) {
	loader := NewLoader(&fakeProvider{}, nil)

	_, err := loader.Load(context.Background(), "", time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, models.ErrInvalidSymbol) {
		t.Errorf("Expected ErrInvalidSymbol, got %v", err)
	}
}

func TestLoadPropagatesProviderError(t *testing.T) {
	cause := errors.New("upstream down")
	loader := NewLoader(&fakeProvider{err: cause}, nil)

	_, err := loader.Load(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, cause) {
		t.Errorf("Expected the provider error to be wrapped, got %v", err)
	}
}

func TestLoadNormalizesSeries(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	provider := &fakeProvider{payload: payloadWith(
		// out of order: later bar first
		bar(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), fptr(12), nil),
		bar(time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC), fptr(10), nil),
		// no close, falls back to open
		bar(time.Date(2024, 3, 6, 14, 30, 0, 0, time.UTC), nil, fptr(13)),
		// neither close nor open, dropped
		bar(time.Date(2024, 3, 7, 14, 30, 0, 0, time.UTC), nil, nil),
		// duplicate calendar day, first kept
		bar(time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC), fptr(99), nil),
		// outside the window on both sides
		bar(time.Date(2024, 2, 28, 14, 30, 0, 0, time.UTC), fptr(1), nil),
		bar(time.Date(2024, 3, 11, 14, 30, 0, 0, time.UTC), fptr(1), nil),
		// inclusive boundaries survive
		bar(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), fptr(9), nil),
		bar(time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC), fptr(14), nil),
	)}

	loader := NewLoader(provider, nil)
	series, err := loader.Load(context.Background(), "AAPL", start, end)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := []float64{9, 10, 12, 13, 14}
	if len(series) != len(expected) {
		t.Fatalf("Expected %d points, got %d: %+v", len(expected), len(series), series)
	}
	for i, close := range expected {
		if series[i].Close != close {
			t.Errorf("Point %d: expected close %v, got %v", i, close, series[i].Close)
		}
		if i > 0 && !series[i-1].Date.Before(series[i].Date) {
			t.Errorf("Series not ascending at %d: %v then %v", i, series[i-1].Date, series[i].Date)
		}
	}

	if provider.lastIntv != "1d" {
		t.Errorf("Expected the daily interval, got %q", provider.lastIntv)
	}
}

func TestLoadEmptyPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload *marketdata.QuoteHistoryResponse
	}{
		{"Nil payload", nil},
		{"No results", &marketdata.QuoteHistoryResponse{}},
		{"No bars", payloadWith()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(&fakeProvider{payload: tt.payload}, nil)
			series, err := loader.Load(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(series) != 0 {
				t.Errorf("Expected an empty series, got %+v", series)
			}
		})
	}
}
