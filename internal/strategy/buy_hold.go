package strategy

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/optionsim/internal/models"
)

// BuyHoldStrategy models buying the underlying at the first close and holding
// to the last. It is the default payoff model and the registry fallback.
type BuyHoldStrategy struct {
	logger *logrus.Logger
}

// NewBuyHoldStrategy creates the buy-and-hold payoff model
func NewBuyHoldStrategy(logger *logrus.Logger) *BuyHoldStrategy {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &BuyHoldStrategy{logger: logger}
}

// Type returns the execution-type tag
func (s *BuyHoldStrategy) Type() models.ExecutionType {
	return models.ExecutionBuyHoldStock
}

// Run computes total return and peak-to-trough drawdown of holding the asset
func (s *BuyHoldStrategy) Run(ctx context.Context, simCtx Context) models.BacktestResult {
	_ = ctx
	if len(simCtx.PriceSeries) == 0 || simCtx.InitialCapital <= 0 {
		s.logger.WithField("simulation_id", simCtx.ID).Warn("Buy & hold invoked without prices or capital")
		return models.ZeroResult()
	}

	firstClose := simCtx.FirstClose()
	lastClose := simCtx.LastClose()
	quantity := simCtx.InitialCapital / firstClose
	finalCapital := quantity * lastClose

	totalReturn := finalCapital - simCtx.InitialCapital
	returnPercentage := totalReturn / simCtx.InitialCapital * 100

	return models.BacktestResult{
		TotalReturn:      totalReturn,
		ReturnPercentage: returnPercentage,
		MaxDrawdown:      maxDrawdown(simCtx.PriceSeries),
	}
}

// maxDrawdown tracks a running peak close and returns the worst
// peak-to-trough decline as a percentage <= 0
func maxDrawdown(series []models.PricePoint) float64 {
	worst := 0.0
	peak := 0.0
	for _, point := range series {
		if point.Close > peak {
			peak = point.Close
		}
		if peak == 0 {
			continue
		}
		drawdown := (point.Close - peak) / peak
		if drawdown < worst {
			worst = drawdown
		}
	}
	return worst * 100
}
