package strategy

import (
	"strings"

	"github.com/yourusername/optionsim/internal/models"
)

// MapExecutionType derives the execution type from a strategy's display
// name. The match is case-insensitive and whitespace-trimmed; every name
// without a dedicated payoff model, including the empty string, maps to
// BUY_HOLD_STOCK.
//
// Name-based dispatch is deliberately coarse: renaming a catalog entry
// silently reverts it to buy & hold. Stored records should carry the
// execution type itself (see ParseExecutionType) so the name lookup only
// runs when a record predates that column.
func MapExecutionType(displayName string) models.ExecutionType {
	switch strings.ToLower(strings.TrimSpace(displayName)) {
	case "long call":
		return models.ExecutionLongCall
	default:
		return models.ExecutionBuyHoldStock
	}
}
