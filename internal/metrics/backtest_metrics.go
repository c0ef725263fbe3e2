// Package metrics defines backtest-run specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optionsim",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by execution type and status",
	}, []string{"execution_type", "status"})
)

// Backtest histogram vectors
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "optionsim",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
	BacktestReturnPercentage = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "optionsim",
		Name:      "backtest_return_percentage",
		Help:      "Return percentage produced by completed backtest runs",
		Buckets:   []float64{-100, -50, -25, -10, -5, 0, 5, 10, 25, 50, 100, 250},
	}, []string{"execution_type"})
)

// RecordBacktestRun records a backtest run event.
// status is "completed" or a degradation reason label.
func RecordBacktestRun(executionType, status string, durationSeconds float64) {
	BacktestRunsTotal.WithLabelValues(executionType, status).Inc()
	BacktestDuration.Observe(durationSeconds)
}

// RecordBacktestReturn records the return percentage of a completed run.
func RecordBacktestReturn(executionType string, returnPercentage float64) {
	BacktestReturnPercentage.WithLabelValues(executionType).Observe(returnPercentage)
}
