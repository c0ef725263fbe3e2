package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LegTemplate is a strategy-level, abstract description of one leg.
// Templates are shared across every simulation that uses the strategy and
// are read-only during a backtest.
type LegTemplate struct {
	InstrumentType InstrumentType `json:"instrument_type"`
	Action         LegAction      `json:"action"`
	QuantityRatio  int            `json:"quantity_ratio"`
	StrikeRelation StrikeRelation `json:"strike_relation"`
}

// SimulationLeg is a concrete, fully-resolved leg used during a backtest run.
// Derived once from a LegTemplate plus the asset's opening price; immutable
// for the life of the simulation record. Strike and expiry are only present
// on option legs.
type SimulationLeg struct {
	ID             uuid.UUID        `json:"id"`
	InstrumentType InstrumentType   `json:"instrument_type"`
	Action         LegAction        `json:"action"`
	Quantity       int              `json:"quantity"`
	EntryPrice     decimal.Decimal  `json:"entry_price"`
	StrikePrice    *decimal.Decimal `json:"strike_price,omitempty"`
	ExpiryDate     *time.Time       `json:"expiry_date,omitempty"`
}

// Validate performs basic sanity checks on a resolved leg
func (l *SimulationLeg) Validate() error {
	if l.Quantity < 1 {
		return ErrInvalidLegQuantity
	}
	if l.InstrumentType.IsOption() && l.StrikePrice == nil {
		return ErrMissingStrike
	}
	return nil
}

// Simulation is the stored simulation record handed to the backtest engine.
// Dates and capital are carried as persisted strings; the engine owns their
// validation.
type Simulation struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	StrategyID     uuid.UUID       `json:"strategy_id"`
	AssetSymbol    string          `json:"asset_symbol"`
	SimulationName string          `json:"simulation_name"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	InitialCapital string          `json:"initial_capital"`
	Legs           []SimulationLeg `json:"legs"`
}
