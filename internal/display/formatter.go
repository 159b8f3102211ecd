package display

import (
	"fmt"
	"strings"

	"SIPCompare/internal/model"
)

// inr formats several amounts at once, stopping at the first unrepresentable one.
func inr(amounts ...float64) ([]string, error) {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		s, err := FormatINR(a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Headline renders the comparison sentence shown under the sliders.
func Headline(cmp *model.Comparison) (string, error) {
	v, err := inr(cmp.Invested, cmp.Primary.DisplayValue, cmp.Benchmark.DisplayValue, cmp.Difference)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Your %s would have grown %s in %s, but in %s %s",
		v[0], v[1], cmp.Primary.Instrument.Name, cmp.Benchmark.Instrument.Name, v[2]))
	b.WriteString(fmt.Sprintf("\n\nthat's %s more reasons to love crypto!", v[3]))
	return b.String(), nil
}

// Digest renders a multi-line report of a comparison for logs.
func Digest(cmp *model.Comparison) (string, error) {
	v, err := inr(cmp.Plan.Contribution, cmp.Invested, cmp.Primary.DisplayValue, cmp.Benchmark.DisplayValue, cmp.Difference)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("SIP digest | %s\n", cmp.ComputedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("  plan: %s x %d months = %s\n", v[0], cmp.Plan.TenureMonths, v[1]))
	for i, o := range []model.InstrumentOutcome{cmp.Primary, cmp.Benchmark} {
		b.WriteString(fmt.Sprintf("  %-6s units %.4f -> %s\n", o.Instrument.Symbol, o.Result.TotalUnits, v[2+i]))
	}
	b.WriteString(fmt.Sprintf("  difference: %s", v[4]))
	return b.String(), nil
}
