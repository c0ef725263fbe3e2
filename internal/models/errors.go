package models

import "errors"

// Custom errors
var (
	ErrInvalidLegQuantity = errors.New("leg quantity must be at least 1")
	ErrMissingStrike      = errors.New("option leg has no strike price")
	ErrNoData             = errors.New("no usable price data")
	ErrInvalidSymbol      = errors.New("asset symbol is required")
)
