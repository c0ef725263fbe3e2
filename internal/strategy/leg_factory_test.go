package strategy

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/optionsim/internal/models"
)

func TestInstantiateLegsDeterministic(t *testing.T) {
	templates := []models.LegTemplate{
		{InstrumentType: models.InstrumentCall, Action: models.ActionBuy, QuantityRatio: 1, StrikeRelation: models.StrikeATM},
		{InstrumentType: models.InstrumentStock, Action: models.ActionBuy, QuantityRatio: 100},
	}
	spec := LegSpec{
		SimulationID: uuid.MustParse("a2b1f21f-8a96-4d8e-b182-63fb6b6e77c1"),
		EndDate:      time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
	}

	first := InstantiateLegs(templates, spec, 100)
	second := InstantiateLegs(templates, spec, 100)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical legs across runs, got\n%+v\nand\n%+v", first, second)
	}
	if first[0].ID == first[1].ID {
		t.Error("Expected distinct IDs per leg within one simulation")
	}
}

func TestInstantiateOptionLeg(t *testing.T) {
	spec := LegSpec{
		SimulationID: uuid.New(),
		EndDate:      time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
	}
	templates := []models.LegTemplate{
		{InstrumentType: models.InstrumentCall, Action: models.ActionBuy, QuantityRatio: 1, StrikeRelation: models.StrikeATM},
	}

	legs := InstantiateLegs(templates, spec, 100)
	if len(legs) != 1 {
		t.Fatalf("Expected 1 leg, got %d", len(legs))
	}

	leg := legs[0]
	if got := leg.EntryPrice.InexactFloat64(); got != 10 {
		t.Errorf("Expected premium 10.00 at spot 100, got %v", got)
	}
	if leg.StrikePrice == nil || leg.StrikePrice.InexactFloat64() != 100 {
		t.Errorf("Expected ATM strike 100, got %v", leg.StrikePrice)
	}
	if leg.ExpiryDate == nil || !leg.ExpiryDate.Equal(spec.EndDate) {
		t.Errorf("Expected expiry %v, got %v", spec.EndDate, leg.ExpiryDate)
	}
}

func TestInstantiateStockLeg(t *testing.T) {
	spec := LegSpec{SimulationID: uuid.New(), EndDate: time.Now()}
	templates := []models.LegTemplate{
		{InstrumentType: models.InstrumentStock, Action: models.ActionBuy, QuantityRatio: 0},
	}

	legs := InstantiateLegs(templates, spec, 42.555)
	if len(legs) != 1 {
		t.Fatalf("Expected 1 leg, got %d", len(legs))
	}

	leg := legs[0]
	if got := leg.EntryPrice.InexactFloat64(); got != 42.56 {
		t.Errorf("Expected entry price rounded to 42.56, got %v", got)
	}
	if leg.StrikePrice != nil {
		t.Errorf("Expected no strike on a stock leg, got %v", leg.StrikePrice)
	}
	if leg.ExpiryDate != nil {
		t.Errorf("Expected no expiry on a stock leg, got %v", leg.ExpiryDate)
	}
	if leg.Quantity != 1 {
		t.Errorf("Expected quantity ratio below 1 to default to 1, got %d", leg.Quantity)
	}
}

func TestDeriveStrikeRelations(t *testing.T) {
	tests := []struct {
		name       string
		instrument models.InstrumentType
		relation   models.StrikeRelation
		expected   float64
	}{
		{"Call ATM", models.InstrumentCall, models.StrikeATM, 100},
		{"Call ITM", models.InstrumentCall, models.StrikeITM, 95},
		{"Call OTM", models.InstrumentCall, models.StrikeOTM, 105},
		{"Put ATM", models.InstrumentPut, models.StrikeATM, 100},
		{"Put ITM", models.InstrumentPut, models.StrikeITM, 105},
		{"Put OTM", models.InstrumentPut, models.StrikeOTM, 95},
	}

	spec := LegSpec{SimulationID: uuid.New(), EndDate: time.Now()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			templates := []models.LegTemplate{{
				InstrumentType: tt.instrument,
				Action:         models.ActionBuy,
				QuantityRatio:  1,
				StrikeRelation: tt.relation,
			}}
			legs := InstantiateLegs(templates, spec, 100)
			if got := legs[0].StrikePrice.InexactFloat64(); got != tt.expected {
				t.Errorf("Expected strike %v, got %v", tt.expected, got)
			}
		})
	}
}
