// Package metrics provides the centralized Prometheus registry for the
// backtesting engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optionsim",
		Name:      "provider_requests_total",
		Help:      "Total market-data provider requests by provider and status",
	}, []string{"provider", "status"})
	LegsInstantiatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "optionsim",
		Name:      "legs_instantiated_total",
		Help:      "Total simulation legs materialized from strategy templates",
	})
)

// Gauge metrics
var (
	WatchlistEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "optionsim",
		Name:      "watchlist_entries",
		Help:      "Number of configured watchlist entries",
	})
)

// Histogram metrics
var (
	PriceSeriesPoints = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "optionsim",
		Name:      "price_series_points",
		Help:      "Number of usable price points per loaded series",
		Buckets:   []float64{0, 2, 10, 30, 90, 180, 365, 730, 1825},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(LegsInstantiatedTotal)
		registry.MustRegister(WatchlistEntries)
		registry.MustRegister(PriceSeriesPoints)

		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(BacktestReturnPercentage)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordProviderRequest records one outbound provider request.
func RecordProviderRequest(provider, status string) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
}

// RecordLegsInstantiated records legs materialized for a simulation.
func RecordLegsInstantiated(count int) {
	LegsInstantiatedTotal.Add(float64(count))
}

// RecordPriceSeriesSize records the size of a loaded price series.
func RecordPriceSeriesSize(points int) {
	PriceSeriesPoints.Observe(float64(points))
}

// UpdateWatchlistEntries updates the watchlist size gauge.
func UpdateWatchlistEntries(count int) {
	WatchlistEntries.Set(float64(count))
}
