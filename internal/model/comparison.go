package model

import "time"

// Instrument describes one asset in the comparison.
type Instrument struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	// DisplayMultiplier converts accumulated units into display currency.
	DisplayMultiplier float64 `json:"display_multiplier"`
}

// InstrumentOutcome is the calculator result for one instrument plus its display value.
type InstrumentOutcome struct {
	Instrument   Instrument        `json:"instrument"`
	Result       CalculationResult `json:"result"`
	DisplayValue float64           `json:"display_value"`
}

// Comparison holds the outcome of running one plan against the primary and benchmark instruments.
type Comparison struct {
	Plan       InvestmentPlan    `json:"plan"`
	Invested   float64           `json:"invested"`
	Primary    InstrumentOutcome `json:"primary"`
	Benchmark  InstrumentOutcome `json:"benchmark"`
	Difference float64           `json:"difference"`
	ComputedAt time.Time         `json:"computed_at"`
}
