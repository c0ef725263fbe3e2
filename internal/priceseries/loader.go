// Package priceseries turns raw provider quote payloads into clean,
// time-ordered daily price series.
package priceseries

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/optionsim/internal/marketdata"
	"github.com/yourusername/optionsim/internal/metrics"
	"github.com/yourusername/optionsim/internal/models"
)

const dailyInterval = "1d"

// Loader fetches and normalizes historical close prices for one asset window
type Loader struct {
	provider marketdata.Provider
	logger   *logrus.Logger
	now      func() time.Time
}

// NewLoader creates a new price series loader
func NewLoader(provider marketdata.Provider, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Loader{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// Load retrieves the daily price series for symbol restricted to
// [startDate, endDate] inclusive, sorted ascending with duplicate dates
// removed. Bars without a usable price are dropped. Provider failures
// surface as the returned error; the orchestrator owns their degradation.
func (l *Loader) Load(ctx context.Context, symbol string, startDate, endDate time.Time) ([]models.PricePoint, error) {
	if symbol == "" {
		return nil, models.ErrInvalidSymbol
	}

	rng := rangeForStart(l.now().UTC(), startDate)
	payload, err := l.provider.GetQuoteHistory(ctx, symbol, rng, dailyInterval)
	if err != nil {
		return nil, fmt.Errorf("quote history fetch for %s: %w", symbol, err)
	}

	series := normalizeSeries(payload, startDate, endDate)
	metrics.RecordPriceSeriesSize(len(series))

	l.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"range":  rng,
		"points": len(series),
	}).Debug("Loaded price series")

	return series, nil
}

// rangeForStart picks the coarse provider fetch window from how far the
// requested start sits in the past. Bounds payload size while guaranteeing
// the window is covered.
func rangeForStart(now, startDate time.Time) string {
	days := int(now.Sub(startDate).Hours() / 24)
	switch {
	case days <= 31:
		return "1mo"
	case days <= 93:
		return "3mo"
	case days <= 186:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 730:
		return "2y"
	case days <= 1825:
		return "5y"
	default:
		return "max"
	}
}

func normalizeSeries(payload *marketdata.QuoteHistoryResponse, startDate, endDate time.Time) []models.PricePoint {
	if payload == nil || len(payload.Results) == 0 {
		return nil
	}

	bars := payload.Results[0].HistoricalDataPrice
	points := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		price, ok := bar.UsablePrice()
		if !ok {
			continue
		}
		date := time.Unix(bar.Date, 0).UTC()
		if !withinWindow(date, startDate, endDate) {
			continue
		}
		points = append(points, models.PricePoint{Date: date, Close: price})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return dedupeByDay(points)
}

// withinWindow compares calendar days, inclusive on both ends
func withinWindow(date, startDate, endDate time.Time) bool {
	day := truncateDay(date)
	return !day.Before(truncateDay(startDate)) && !day.After(truncateDay(endDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dedupeByDay keeps the first bar seen for each calendar day; input must be
// sorted ascending
func dedupeByDay(points []models.PricePoint) []models.PricePoint {
	if len(points) < 2 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		if p.SameDay(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}
	return out
}
