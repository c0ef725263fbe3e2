package models

import "strings"

// InstrumentType identifies what kind of instrument a leg trades
type InstrumentType string

// Instrument types
const (
	InstrumentCall  InstrumentType = "CALL"
	InstrumentPut   InstrumentType = "PUT"
	InstrumentStock InstrumentType = "STOCK"
)

// IsOption reports whether the instrument is an option contract
func (t InstrumentType) IsOption() bool {
	return t == InstrumentCall || t == InstrumentPut
}

// LegAction is the direction of a leg
type LegAction string

// Leg actions
const (
	ActionBuy  LegAction = "BUY"
	ActionSell LegAction = "SELL"
)

// StrikeRelation describes where an option strike sits relative to the underlying at entry
type StrikeRelation string

// Strike relations
const (
	StrikeATM StrikeRelation = "ATM"
	StrikeITM StrikeRelation = "ITM"
	StrikeOTM StrikeRelation = "OTM"
)

// ExecutionType selects which payoff model a backtest uses, independent of
// the strategy's display name
type ExecutionType string

// Execution types
const (
	ExecutionLongCall     ExecutionType = "LONG_CALL"
	ExecutionBuyHoldStock ExecutionType = "BUY_HOLD_STOCK"
)

// ParseExecutionType normalizes a persisted execution-type tag. Unrecognized
// values fall back to BUY_HOLD_STOCK so old records still backtest.
func ParseExecutionType(raw string) ExecutionType {
	switch ExecutionType(strings.ToUpper(strings.TrimSpace(raw))) {
	case ExecutionLongCall:
		return ExecutionLongCall
	default:
		return ExecutionBuyHoldStock
	}
}
