// Package service coordinates watchlist batch backtest runs.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/optionsim/internal/backtest"
	"github.com/yourusername/optionsim/internal/config"
	"github.com/yourusername/optionsim/internal/metrics"
	"github.com/yourusername/optionsim/internal/models"
	"github.com/yourusername/optionsim/internal/strategy"
)

const defaultQuantityRatio = 1

// batchNamespace seeds deterministic simulation IDs so reruns of the same
// watchlist entry overwrite the same report instead of accumulating copies.
var batchNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("optionsim.watchlist"))

// BatchRunner executes the configured watchlist: each entry pairs an asset
// with a catalog strategy and a simulation window, and every run degrades to
// the all-zero result rather than aborting the batch.
type BatchRunner struct {
	loader backtest.SeriesLoader
	engine *backtest.Engine
	logger *logrus.Logger
}

// NewBatchRunner creates a new watchlist batch runner
func NewBatchRunner(loader backtest.SeriesLoader, engine *backtest.Engine, logger *logrus.Logger) (*BatchRunner, error) {
	if loader == nil {
		return nil, fmt.Errorf("series loader is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("backtest engine is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &BatchRunner{
		loader: loader,
		engine: engine,
		logger: logger,
	}, nil
}

// RunWatchlist runs every watchlist entry once and returns batch statistics.
// Individual entry failures are logged and counted, never propagated.
func (r *BatchRunner) RunWatchlist(ctx context.Context, cfg *config.Config) *BatchMetrics {
	batch := NewBatchMetrics()
	batch.Total = len(cfg.Watchlist)
	metrics.UpdateWatchlistEntries(len(cfg.Watchlist))

	r.logger.WithField("entries", len(cfg.Watchlist)).Info("Starting watchlist batch run")

	for _, entry := range cfg.Watchlist {
		if err := ctx.Err(); err != nil {
			r.logger.WithError(err).Warn("Watchlist batch run cancelled")
			break
		}

		report, err := r.RunEntry(ctx, cfg, entry)
		if err != nil {
			batch.RecordError()
			r.logger.WithError(err).WithFields(logrus.Fields{
				"symbol":   entry.Symbol,
				"strategy": entry.StrategyName,
			}).Error("Watchlist entry failed")
			continue
		}

		if report.Result.IsZero() {
			batch.RecordDegraded()
		} else {
			batch.RecordCompleted()
		}
	}

	batch.Duration = time.Since(batch.StartTime)
	r.logger.Infof("Watchlist batch run finished: %s", batch.String())

	return batch
}

// RunEntry runs one watchlist entry end to end and exports its JSON report.
func (r *BatchRunner) RunEntry(ctx context.Context, cfg *config.Config, entry config.WatchlistEntry) (backtest.RunReport, error) {
	startDate, endDate, capital := resolveWindow(cfg.Backtest, entry)

	sim, series, err := r.buildSimulation(ctx, entry, startDate, endDate, capital)
	if err != nil {
		return backtest.RunReport{}, err
	}

	executionType := strategy.MapExecutionType(entry.StrategyName)
	started := time.Now()
	result := r.engine.Run(ctx, backtest.Request{
		Simulation:    sim,
		ExecutionType: executionType,
		Series:        series,
	})

	report := backtest.RunReport{
		Simulation:     sim,
		ExecutionType:  executionType,
		Result:         result,
		GeneratedAt:    time.Now().UTC(),
		EngineDuration: time.Since(started).String(),
	}

	outputPath := filepath.Join(cfg.Backtest.OutputPath, reportFileName(entry))
	if err := backtest.ExportToJSON(report, outputPath); err != nil {
		return report, fmt.Errorf("failed to export report: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"symbol":            entry.Symbol,
		"strategy":          entry.StrategyName,
		"execution_type":    executionType,
		"return_percentage": result.ReturnPercentage,
		"report":            outputPath,
	}).Info("Watchlist entry completed")

	return report, nil
}

// buildSimulation assembles the simulation record for one watchlist entry,
// instantiating concrete legs off the opening price of the window. The
// loaded series is returned alongside so the engine run reuses it instead
// of hitting the provider a second time.
func (r *BatchRunner) buildSimulation(ctx context.Context, entry config.WatchlistEntry, startDate, endDate string, capital float64) (models.Simulation, []models.PricePoint, error) {
	templates, ok := strategy.CatalogTemplates(entry.StrategyName)
	if !ok {
		r.logger.WithField("strategy", entry.StrategyName).Warn("Unknown catalog strategy, using buy and hold legs")
		templates = []models.LegTemplate{{
			InstrumentType: models.InstrumentStock,
			Action:         models.ActionBuy,
			QuantityRatio:  defaultQuantityRatio,
		}}
	}

	simID := entrySimulationID(entry, startDate, endDate)
	sim := models.Simulation{
		ID:             simID,
		UserID:         batchNamespace,
		StrategyID:     uuid.NewSHA1(batchNamespace, []byte(entry.StrategyName)),
		AssetSymbol:    entry.Symbol,
		SimulationName: fmt.Sprintf("%s %s %s", entry.Symbol, entry.StrategyName, startDate),
		StartDate:      startDate,
		EndDate:        endDate,
		InitialCapital: fmt.Sprintf("%.2f", capital),
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return sim, nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return sim, nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	// The opening price anchors entry prices and derived strikes. When the
	// series is unavailable the simulation keeps zero legs and the engine
	// degrades the run on its own.
	series, err := r.loader.Load(ctx, entry.Symbol, start, end)
	if err != nil || len(series) == 0 {
		r.logger.WithError(err).WithField("symbol", entry.Symbol).Warn("No opening price available, skipping leg instantiation")
		return sim, nil, nil
	}

	sim.Legs = strategy.InstantiateLegs(templates, strategy.LegSpec{
		SimulationID: simID,
		EndDate:      end,
	}, series[0].Close)
	metrics.RecordLegsInstantiated(len(sim.Legs))

	return sim, series, nil
}

func resolveWindow(defaults config.BacktestConfig, entry config.WatchlistEntry) (string, string, float64) {
	startDate := defaults.StartDate
	if entry.StartDate != "" {
		startDate = entry.StartDate
	}
	endDate := defaults.EndDate
	if entry.EndDate != "" {
		endDate = entry.EndDate
	}
	capital := defaults.InitialCapital
	if entry.InitialCapital > 0 {
		capital = entry.InitialCapital
	}
	return startDate, endDate, capital
}

func entrySimulationID(entry config.WatchlistEntry, startDate, endDate string) uuid.UUID {
	key := fmt.Sprintf("%s|%s|%s|%s", entry.Symbol, entry.StrategyName, startDate, endDate)
	return uuid.NewSHA1(batchNamespace, []byte(key))
}

func reportFileName(entry config.WatchlistEntry) string {
	return fmt.Sprintf("%s_%s.json", entry.Symbol, sanitizeName(entry.StrategyName))
}

func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
