package strategy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/optionsim/internal/models"
)

// Fixed pricing constants for the simplified, asset-agnostic premium model.
// Not a real options pricer: backtests stay deterministic without an
// implied-volatility input.
const (
	optionPremiumRatio = 0.10 // option premium as a fraction of spot
	strikeOffsetRatio  = 0.05 // ITM/OTM strike offset from spot
	moneyPlaces        = 2
)

// LegSpec carries the simulation fields the factory needs to resolve legs
type LegSpec struct {
	SimulationID uuid.UUID
	EndDate      time.Time
}

// InstantiateLegs expands a strategy's abstract leg templates into concrete
// simulation legs given the underlying price at the simulation start. Pure
// and deterministic: identical inputs always produce identical legs, leg IDs
// included.
func InstantiateLegs(templates []models.LegTemplate, spec LegSpec, underlyingPriceAtStart float64) []models.SimulationLeg {
	legs := make([]models.SimulationLeg, 0, len(templates))
	underlying := decimal.NewFromFloat(underlyingPriceAtStart)

	for i, tpl := range templates {
		quantity := tpl.QuantityRatio
		if quantity < 1 {
			quantity = 1
		}

		leg := models.SimulationLeg{
			ID:             legID(spec.SimulationID, i),
			InstrumentType: tpl.InstrumentType,
			Action:         tpl.Action,
			Quantity:       quantity,
		}

		if tpl.InstrumentType.IsOption() {
			premium := underlying.Mul(decimal.NewFromFloat(optionPremiumRatio)).Round(moneyPlaces)
			strike := deriveStrike(underlying, tpl.InstrumentType, tpl.StrikeRelation).Round(moneyPlaces)
			expiry := spec.EndDate

			leg.EntryPrice = premium
			leg.StrikePrice = &strike
			leg.ExpiryDate = &expiry
		} else {
			// Stock legs enter at spot, with no strike and no expiry
			leg.EntryPrice = underlying.Round(moneyPlaces)
		}

		legs = append(legs, leg)
	}

	return legs
}

// legID derives a stable leg identity from the owning simulation and the
// template position, keeping instantiation idempotent
func legID(simulationID uuid.UUID, index int) uuid.UUID {
	return uuid.NewSHA1(simulationID, []byte{byte(index)})
}

// deriveStrike places the strike relative to the underlying. CALL and PUT
// invert which side of spot is in versus out of the money.
func deriveStrike(underlying decimal.Decimal, instrument models.InstrumentType, relation models.StrikeRelation) decimal.Decimal {
	offset := decimal.NewFromFloat(strikeOffsetRatio)
	below := underlying.Mul(decimal.NewFromInt(1).Sub(offset))
	above := underlying.Mul(decimal.NewFromInt(1).Add(offset))

	switch relation {
	case models.StrikeITM:
		if instrument == models.InstrumentCall {
			return below
		}
		return above
	case models.StrikeOTM:
		if instrument == models.InstrumentCall {
			return above
		}
		return below
	default: // ATM
		return underlying
	}
}
