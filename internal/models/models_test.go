package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseExecutionType(t *testing.T) {
	tests := []struct {
		raw      string
		expected ExecutionType
	}{
		{"LONG_CALL", ExecutionLongCall},
		{"long_call", ExecutionLongCall},
		{" long_call ", ExecutionLongCall},
		{"BUY_HOLD_STOCK", ExecutionBuyHoldStock},
		{"SHORT_PUT", ExecutionBuyHoldStock},
		{"", ExecutionBuyHoldStock},
	}

	for _, tt := range tests {
		if got := ParseExecutionType(tt.raw); got != tt.expected {
			t.Errorf("ParseExecutionType(%q) = %s, expected %s", tt.raw, got, tt.expected)
		}
	}
}

func TestInstrumentTypeIsOption(t *testing.T) {
	if !InstrumentCall.IsOption() || !InstrumentPut.IsOption() {
		t.Error("Expected CALL and PUT to be options")
	}
	if InstrumentStock.IsOption() {
		t.Error("Expected STOCK not to be an option")
	}
}

func TestPricePointSameDay(t *testing.T) {
	morning := PricePoint{Date: time.Date(2023, 3, 1, 9, 30, 0, 0, time.UTC)}
	evening := PricePoint{Date: time.Date(2023, 3, 1, 20, 0, 0, 0, time.UTC)}
	nextDay := PricePoint{Date: time.Date(2023, 3, 2, 9, 30, 0, 0, time.UTC)}

	if !morning.SameDay(evening) {
		t.Error("Expected same calendar day to match")
	}
	if morning.SameDay(nextDay) {
		t.Error("Expected different days not to match")
	}
}

func TestSimulationLegValidate(t *testing.T) {
	strike := decimal.NewFromFloat(100)

	tests := []struct {
		name     string
		leg      SimulationLeg
		expected error
	}{
		{"Valid stock leg", SimulationLeg{InstrumentType: InstrumentStock, Quantity: 1}, nil},
		{"Valid option leg", SimulationLeg{InstrumentType: InstrumentCall, Quantity: 1, StrikePrice: &strike}, nil},
		{"Zero quantity", SimulationLeg{InstrumentType: InstrumentStock, Quantity: 0}, ErrInvalidLegQuantity},
		{"Option without strike", SimulationLeg{InstrumentType: InstrumentPut, Quantity: 1}, ErrMissingStrike},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.leg.Validate(); !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestBacktestResultIsZero(t *testing.T) {
	if !ZeroResult().IsZero() {
		t.Error("Expected the zero result to report zero")
	}
	if (BacktestResult{TotalReturn: 1}).IsZero() {
		t.Error("Expected a non-zero result not to report zero")
	}
	if (BacktestResult{MaxDrawdown: -0.4}).IsZero() {
		t.Error("Expected a result with drawdown not to report zero")
	}
}
