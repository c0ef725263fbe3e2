// Package logger provides backtest-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for backtest runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRunCompleted logs a finished backtest run with its headline numbers.
func (bl *BacktestLogger) LogRunCompleted(simulationID, symbol, executionType string, totalReturn, returnPercentage, maxDrawdown float64, durationMs float64) {
	bl.WithFields(logrus.Fields{
		"simulation_id":     simulationID,
		"symbol":            symbol,
		"execution_type":    executionType,
		"total_return":      totalReturn,
		"return_percentage": returnPercentage,
		"max_drawdown":      maxDrawdown,
		"duration_ms":       durationMs,
	}).Info("Backtest run completed")
}

// LogRunDegraded logs a run that collapsed to the zero result.
func (bl *BacktestLogger) LogRunDegraded(simulationID, symbol, executionType, reason string, cause error) {
	entry := bl.WithFields(logrus.Fields{
		"simulation_id":  simulationID,
		"symbol":         symbol,
		"execution_type": executionType,
		"reason":         reason,
	})
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Warn("Backtest run degraded")
}
