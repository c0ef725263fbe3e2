package models

// BacktestResult is the sole output of a backtest run. TotalReturn is in
// currency units, ReturnPercentage in percent (may be negative) and
// MaxDrawdown in percent (always <= 0).
type BacktestResult struct {
	TotalReturn      float64 `json:"total_return"`
	ReturnPercentage float64 `json:"return_percentage"`
	MaxDrawdown      float64 `json:"max_drawdown"`
}

// ZeroResult is the safe result every failure mode degrades to
func ZeroResult() BacktestResult {
	return BacktestResult{}
}

// IsZero reports whether the result carries no signal
func (r BacktestResult) IsZero() bool {
	return r.TotalReturn == 0 && r.ReturnPercentage == 0 && r.MaxDrawdown == 0
}
