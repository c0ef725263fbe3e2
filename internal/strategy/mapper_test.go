package strategy

import (
	"testing"

	"github.com/yourusername/optionsim/internal/models"
)

func TestMapExecutionType(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		expected models.ExecutionType
	}{
		{"Exact match", "long call", models.ExecutionLongCall},
		{"Mixed case", "Long Call", models.ExecutionLongCall},
		{"Upper case", "LONG CALL", models.ExecutionLongCall},
		{"Padded", "  Long Call  ", models.ExecutionLongCall},
		{"Buy and hold", "buy & hold stock", models.ExecutionBuyHoldStock},
		{"Unknown name", "iron condor", models.ExecutionBuyHoldStock},
		{"Empty", "", models.ExecutionBuyHoldStock},
		{"Internal whitespace not collapsed", "long  call", models.ExecutionBuyHoldStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapExecutionType(tt.display); got != tt.expected {
				t.Errorf("MapExecutionType(%q) = %s, expected %s", tt.display, got, tt.expected)
			}
		})
	}
}

func TestCatalogTemplates(t *testing.T) {
	templates, ok := CatalogTemplates("Long Call")
	if !ok {
		t.Fatal("Expected a catalog entry for long call")
	}
	if len(templates) != 1 {
		t.Fatalf("Expected 1 template, got %d", len(templates))
	}
	if templates[0].InstrumentType != models.InstrumentCall || templates[0].Action != models.ActionBuy {
		t.Errorf("Expected a bought CALL template, got %+v", templates[0])
	}

	if _, ok := CatalogTemplates("straddle"); ok {
		t.Error("Expected no catalog entry for an unknown name")
	}
}

func TestCatalogTemplatesReturnsCopy(t *testing.T) {
	first, _ := CatalogTemplates("long call")
	first[0].QuantityRatio = 99

	second, _ := CatalogTemplates("long call")
	if second[0].QuantityRatio == 99 {
		t.Error("Expected catalog templates to be insulated from caller mutation")
	}
}
