package strategy

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/optionsim/internal/models"
)

// Strategy defines the interface for payoff models. Implementations are pure
// given their context: no shared mutable state, safe to invoke concurrently
// across simulations.
type Strategy interface {
	// Type returns the execution-type tag this implementation handles
	Type() models.ExecutionType

	// Run computes the backtest result for the assembled context. It never
	// returns an error: expected mismatches degrade to the zero result.
	Run(ctx context.Context, simCtx Context) models.BacktestResult
}

// Context is the complete input to a strategy implementation, built fresh by
// the orchestrator per run and never persisted as-is. PriceSeries is
// time-ascending with at least two points by the time a strategy sees it.
type Context struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	ExecutionType  models.ExecutionType
	AssetSymbol    string
	StartDate      time.Time
	EndDate        time.Time
	InitialCapital float64
	Legs           []models.SimulationLeg
	PriceSeries    []models.PricePoint
}

// FirstClose returns the first close of the series, or 0 when empty
func (c Context) FirstClose() float64 {
	if len(c.PriceSeries) == 0 {
		return 0
	}
	return c.PriceSeries[0].Close
}

// LastClose returns the last close of the series, or 0 when empty
func (c Context) LastClose() float64 {
	if len(c.PriceSeries) == 0 {
		return 0
	}
	return c.PriceSeries[len(c.PriceSeries)-1].Close
}
