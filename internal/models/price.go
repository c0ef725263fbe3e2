package models

import "time"

// PricePoint is a single daily close in a normalized price series.
// Immutable once constructed by the loader.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// SameDay reports whether two points fall on the same calendar day (UTC)
func (p PricePoint) SameDay(other PricePoint) bool {
	y1, m1, d1 := p.Date.UTC().Date()
	y2, m2, d2 := other.Date.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
