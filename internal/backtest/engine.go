// Package backtest orchestrates simulation backtest runs.
package backtest

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	applog "github.com/yourusername/optionsim/internal/logger"
	"github.com/yourusername/optionsim/internal/metrics"
	"github.com/yourusername/optionsim/internal/models"
	"github.com/yourusername/optionsim/internal/strategy"
)

const dateLayout = "2006-01-02"

// Degradation reasons. Every failure mode collapses to the zero result at
// the engine boundary; the reason only survives in logs and metrics labels.
const (
	statusCompleted        = "completed"
	reasonInvalidDates     = "invalid_dates"
	reasonInvalidCapital   = "invalid_capital"
	reasonProviderFailure  = "provider_failure"
	reasonInsufficientData = "insufficient_data"
	reasonPanic            = "panic"
)

// SeriesLoader loads the normalized daily price series for one asset window
type SeriesLoader interface {
	Load(ctx context.Context, symbol string, startDate, endDate time.Time) ([]models.PricePoint, error)
}

// Request is one backtest run: the stored simulation record plus the
// execution type the caller derived from the strategy's display name.
// Series, when set, is a price series the caller already loaded for the
// simulation window; the engine then skips its own provider call.
type Request struct {
	Simulation    models.Simulation
	ExecutionType models.ExecutionType
	Series        []models.PricePoint
}

// Engine validates inputs, loads prices, assembles the strategy context and
// invokes the right payoff model. Every failure path degrades to the
// all-zero result; Run never returns an error and never panics past its
// boundary.
type Engine struct {
	loader   SeriesLoader
	registry *strategy.Registry
	logger   *logrus.Logger
	runLog   *applog.BacktestLogger
}

// NewEngine creates a new backtest engine
func NewEngine(loader SeriesLoader, registry *strategy.Registry, logger *logrus.Logger) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("series loader is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("strategy registry is required")
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Engine{
		loader:   loader,
		registry: registry,
		logger:   logger,
		runLog:   applog.NewBacktestLogger(logger),
	}, nil
}

// Logger returns the engine logger
func (e *Engine) Logger() *logrus.Logger {
	return e.logger
}

// Run executes one backtest. All transitions are terminal at the first
// applicable step; a degraded run still produces a storable zero result.
func (e *Engine) Run(ctx context.Context, req Request) models.BacktestResult {
	started := time.Now()
	out := e.safeRun(ctx, req)

	executionType := string(req.ExecutionType)
	if out.reason != "" {
		e.runLog.LogRunDegraded(req.Simulation.ID.String(), req.Simulation.AssetSymbol,
			executionType, out.reason, out.cause)
		metrics.RecordBacktestRun(executionType, out.reason, time.Since(started).Seconds())
		return models.ZeroResult()
	}

	e.runLog.LogRunCompleted(req.Simulation.ID.String(), req.Simulation.AssetSymbol,
		executionType, out.result.TotalReturn, out.result.ReturnPercentage,
		out.result.MaxDrawdown, float64(time.Since(started).Milliseconds()))
	metrics.RecordBacktestRun(executionType, statusCompleted, time.Since(started).Seconds())
	metrics.RecordBacktestReturn(executionType, out.result.ReturnPercentage)
	return out.result
}

// outcome keeps the "why it degraded" reason next to the result until the
// boundary collapses it
type outcome struct {
	result models.BacktestResult
	reason string
	cause  error
}

func completed(result models.BacktestResult) outcome {
	return outcome{result: result}
}

func degraded(reason string, cause error) outcome {
	return outcome{reason: reason, cause: cause}
}

// safeRun converts panics from the load/assemble/invoke steps into a
// degraded outcome so nothing escapes to the caller
func (e *Engine) safeRun(ctx context.Context, req Request) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = degraded(reasonPanic, fmt.Errorf("backtest panic: %v", r))
		}
	}()
	return e.run(ctx, req)
}

func (e *Engine) run(ctx context.Context, req Request) outcome {
	sim := req.Simulation

	startDate, endDate, err := parseWindow(sim.StartDate, sim.EndDate)
	if err != nil {
		return degraded(reasonInvalidDates, err)
	}

	initialCapital, err := parseCapital(sim.InitialCapital)
	if err != nil {
		return degraded(reasonInvalidCapital, err)
	}

	series := req.Series
	if series == nil {
		series, err = e.loader.Load(ctx, sim.AssetSymbol, startDate, endDate)
		if err != nil {
			return degraded(reasonProviderFailure, err)
		}
	}

	if len(series) < 2 {
		return degraded(reasonInsufficientData,
			fmt.Errorf("%d usable price points for %s", len(series), sim.AssetSymbol))
	}

	simCtx := strategy.Context{
		ID:             sim.ID,
		UserID:         sim.UserID,
		ExecutionType:  req.ExecutionType,
		AssetSymbol:    sim.AssetSymbol,
		StartDate:      startDate,
		EndDate:        endDate,
		InitialCapital: initialCapital,
		Legs:           sim.Legs,
		PriceSeries:    series,
	}

	impl := e.registry.Get(req.ExecutionType)
	return completed(impl.Run(ctx, simCtx))
}

// parseWindow parses both dates and requires a strictly positive window
func parseWindow(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if !endDate.After(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %q is not after start date %q", end, start)
	}
	return startDate, endDate, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// parseCapital requires a finite number strictly greater than zero
func parseCapital(raw string) (float64, error) {
	capital, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid initial capital %q: %w", raw, err)
	}
	if math.IsNaN(capital) || math.IsInf(capital, 0) || capital <= 0 {
		return 0, fmt.Errorf("initial capital %q must be a positive finite number", raw)
	}
	return capital, nil
}
