package display

import (
	"math"

	"github.com/shopspring/decimal"
)

// Chart is one plotted line: a value per month with its bounds for axis scaling.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
}

// ChartSeries builds a chart from a cumulative value trajectory, rounding points to 2 decimals.
// Points stay in the dataset's price currency; the unit multiplier only applies to totals.
func ChartSeries(trajectory []float64) (Chart, error) {
	c := Chart{
		Labels: MonthLabels(len(trajectory)),
		Values: make([]float64, len(trajectory)),
	}
	for i, v := range trajectory {
		if err := checkAmount(v); err != nil {
			return Chart{}, err
		}
		c.Values[i] = decimal.NewFromFloat(v).Round(2).InexactFloat64()
	}
	c.High, c.Low = Bounds(c.Values)
	return c, nil
}

// Bounds returns the highest and lowest value, or zeros for an empty slice.
func Bounds(values []float64) (high, low float64) {
	if len(values) == 0 {
		return 0, 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low
}
