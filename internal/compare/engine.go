package compare

import (
	"fmt"
	"time"

	"SIPCompare/internal/calculator"
	"SIPCompare/internal/collector"
	"SIPCompare/internal/display"
	"SIPCompare/internal/model"
)

// Engine runs one plan against a primary instrument and a benchmark.
// It holds no mutable state, so concurrent calls are independent.
type Engine struct {
	primary, benchmark         *model.PriceSeries
	primaryInst, benchmarkInst model.Instrument
	monthsLimit                int
	now                        func() time.Time
}

// NewEngine looks up both instruments in the catalog. monthsLimit caps the usable tenure (0 = history only).
func NewEngine(cat *collector.Catalog, primarySymbol, benchmarkSymbol string, monthsLimit int) (*Engine, error) {
	ps, pi, err := cat.Series(primarySymbol)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}
	bs, bi, err := cat.Series(benchmarkSymbol)
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}
	return &Engine{
		primary:       ps,
		benchmark:     bs,
		primaryInst:   pi,
		benchmarkInst: bi,
		monthsLimit:   monthsLimit,
		now:           time.Now,
	}, nil
}

// MaxTenure is the longest tenure both instruments can serve.
func (e *Engine) MaxTenure() int {
	p := calculator.MaxTenure(e.primary, e.monthsLimit)
	b := calculator.MaxTenure(e.benchmark, e.monthsLimit)
	if b < p {
		return b
	}
	return p
}

// Instruments returns the primary and benchmark metadata.
func (e *Engine) Instruments() (primary, benchmark model.Instrument) {
	return e.primaryInst, e.benchmarkInst
}

// Compare computes the plan for both instruments. Errors from the calculator are returned unchanged in kind.
func (e *Engine) Compare(plan model.InvestmentPlan) (*model.Comparison, error) {
	if err := calculator.ValidatePlan(plan); err != nil {
		return nil, err
	}
	p, err := outcome(e.primary, e.primaryInst, plan)
	if err != nil {
		return nil, err
	}
	b, err := outcome(e.benchmark, e.benchmarkInst, plan)
	if err != nil {
		return nil, err
	}
	return &model.Comparison{
		Plan:       plan,
		Invested:   plan.Invested(),
		Primary:    p,
		Benchmark:  b,
		Difference: p.DisplayValue - b.DisplayValue,
		ComputedAt: e.now(),
	}, nil
}

func outcome(s *model.PriceSeries, inst model.Instrument, plan model.InvestmentPlan) (model.InstrumentOutcome, error) {
	res, err := calculator.Compute(s, plan.TenureMonths, plan.Contribution)
	if err != nil {
		return model.InstrumentOutcome{}, fmt.Errorf("%s: %w", inst.Symbol, err)
	}
	value, err := display.ToCurrency(res.TotalUnits, inst.DisplayMultiplier)
	if err != nil {
		return model.InstrumentOutcome{}, fmt.Errorf("%s: %w", inst.Symbol, err)
	}
	return model.InstrumentOutcome{
		Instrument:   inst,
		Result:       *res,
		DisplayValue: value,
	}, nil
}
