package strategy

import (
	"context"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/optionsim/internal/models"
)

// LongCallStrategy models holding a bought call to expiry. Intraperiod
// mark-to-market of the option is not modeled; the worst case of a long
// option is the premium paid, and the drawdown figure reflects that.
type LongCallStrategy struct {
	logger *logrus.Logger
}

// NewLongCallStrategy creates the long-call payoff model
func NewLongCallStrategy(logger *logrus.Logger) *LongCallStrategy {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &LongCallStrategy{logger: logger}
}

// Type returns the execution-type tag
func (s *LongCallStrategy) Type() models.ExecutionType {
	return models.ExecutionLongCall
}

// Run computes the expiry payoff of the first bought call leg
func (s *LongCallStrategy) Run(ctx context.Context, simCtx Context) models.BacktestResult {
	_ = ctx
	if len(simCtx.PriceSeries) == 0 || simCtx.InitialCapital <= 0 {
		return models.ZeroResult()
	}

	leg := findBoughtCall(simCtx.Legs)
	if leg == nil {
		// Expected when a simulation was saved against a mismatched
		// strategy; benign, not an error.
		s.logger.WithFields(logrus.Fields{
			"simulation_id": simCtx.ID,
			"symbol":        simCtx.AssetSymbol,
		}).Warn("Long call simulation has no bought CALL leg")
		return models.ZeroResult()
	}

	strike := simCtx.FirstClose()
	if leg.StrikePrice != nil {
		strike = leg.StrikePrice.InexactFloat64()
	} else {
		s.logger.WithFields(logrus.Fields{
			"simulation_id": simCtx.ID,
			"leg_id":        leg.ID,
			"fallback":      strike,
		}).Warn("Long call leg has no strike, approximating with first close")
	}

	premium := leg.EntryPrice.InexactFloat64()
	quantity := float64(leg.Quantity)

	intrinsicValue := math.Max(simCtx.LastClose()-strike, 0)
	payoffPerUnit := intrinsicValue - premium
	totalReturn := payoffPerUnit * quantity

	return models.BacktestResult{
		TotalReturn:      totalReturn,
		ReturnPercentage: totalReturn / simCtx.InitialCapital * 100,
		MaxDrawdown:      -(premium * quantity) / simCtx.InitialCapital * 100,
	}
}

func findBoughtCall(legs []models.SimulationLeg) *models.SimulationLeg {
	for i := range legs {
		if legs[i].InstrumentType == models.InstrumentCall && legs[i].Action == models.ActionBuy {
			return &legs[i]
		}
	}
	return nil
}
