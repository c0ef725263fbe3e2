package strategy

import (
	"strings"

	"github.com/yourusername/optionsim/internal/models"
)

// builtinCatalog mirrors the platform's strategy catalog for standalone
// runs: display name to the ordered leg templates the strategy owns.
var builtinCatalog = map[string][]models.LegTemplate{
	"long call": {
		{
			InstrumentType: models.InstrumentCall,
			Action:         models.ActionBuy,
			QuantityRatio:  1,
			StrikeRelation: models.StrikeATM,
		},
	},
	"buy & hold stock": {
		{
			InstrumentType: models.InstrumentStock,
			Action:         models.ActionBuy,
			QuantityRatio:  100,
		},
	},
}

// CatalogTemplates returns the builtin leg templates for a strategy display
// name. The boolean is false when the name has no builtin entry.
func CatalogTemplates(displayName string) ([]models.LegTemplate, bool) {
	templates, ok := builtinCatalog[strings.ToLower(strings.TrimSpace(displayName))]
	if !ok {
		return nil, false
	}
	out := make([]models.LegTemplate, len(templates))
	copy(out, templates)
	return out, true
}

// CatalogNames lists the builtin strategy display names
func CatalogNames() []string {
	names := make([]string, 0, len(builtinCatalog))
	for name := range builtinCatalog {
		names = append(names, name)
	}
	return names
}
