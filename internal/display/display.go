// Package display turns calculator output into what the UI shows: currency values, labels and chart series.
// The calculator works in instrument units; converting to currency happens only here, with a fixed
// per-instrument multiplier.
package display

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"SIPCompare/internal/apperrors"
)

// MonthsMin is the lowest tenure the form offers.
const MonthsMin = 1

// Default multipliers converting accumulated units into rupees.
const (
	SolMultiplier   = 11638
	NiftyMultiplier = 24320
)

// MaxAmount is the largest magnitude, in rupees, that converts to int64 paise without loss.
const MaxAmount = 1e15

// Slider holds the bounds of the amount input.
type Slider struct {
	AmountMin  float64 `json:"amount_min"`
	AmountMax  float64 `json:"amount_max"`
	AmountStep float64 `json:"amount_step"`
}

// DefaultSlider is the form's amount slider: 1000..100000 in steps of 1000.
var DefaultSlider = Slider{AmountMin: 1000, AmountMax: 100000, AmountStep: 1000}

// Contains reports whether amount lies within the slider bounds.
func (s Slider) Contains(amount float64) bool {
	return amount >= s.AmountMin && amount <= s.AmountMax
}

// SnapAmount clamps an amount to the slider bounds and rounds it to the nearest step.
func (s Slider) SnapAmount(amount float64) float64 {
	if !(amount >= s.AmountMin) {
		return s.AmountMin
	}
	if amount > s.AmountMax {
		return s.AmountMax
	}
	if s.AmountStep <= 0 {
		return amount
	}
	step := decimal.NewFromFloat(s.AmountStep)
	snapped := decimal.NewFromFloat(amount).Div(step).Round(0).Mul(step).InexactFloat64()
	if snapped > s.AmountMax {
		return s.AmountMax
	}
	if snapped < s.AmountMin {
		return s.AmountMin
	}
	return snapped
}

func checkAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > MaxAmount {
		return fmt.Errorf("%w: %v", apperrors.ErrAmountOutOfRange, v)
	}
	return nil
}

// RoundUnits rounds accumulated units to 2 decimals, half away from zero. units must be finite.
func RoundUnits(units float64) float64 {
	return decimal.NewFromFloat(units).Round(2).InexactFloat64()
}

// ToCurrency converts units to display currency: units are rounded to 2 decimals first,
// then multiplied, and the product is rounded to paise.
func ToCurrency(units, multiplier float64) (float64, error) {
	if err := checkAmount(units); err != nil {
		return 0, err
	}
	if err := checkAmount(multiplier); err != nil {
		return 0, err
	}
	if err := checkAmount(units * multiplier); err != nil {
		return 0, err
	}
	return decimal.NewFromFloat(RoundUnits(units)).
		Mul(decimal.NewFromFloat(multiplier)).
		Round(2).
		InexactFloat64(), nil
}

// FormatINR renders an amount as rupees, e.g. "₹1,000.00".
func FormatINR(amount float64) (string, error) {
	if err := checkAmount(amount); err != nil {
		return "", err
	}
	paise := decimal.NewFromFloat(amount).Round(2).Shift(2).IntPart()
	return money.New(paise, "INR").Display(), nil
}

// MonthLabels returns "Month 1" .. "Month n".
func MonthLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Month %d", i+1)
	}
	return labels
}

// TenureColor picks the slider colour for a tenure.
func TenureColor(months int) string {
	switch {
	case months < 12:
		return "warning"
	case months <= 24:
		return "foreground"
	default:
		return "success"
	}
}

// ClampMonths keeps a tenure within [MonthsMin, limit].
func ClampMonths(months, limit int) int {
	if months < MonthsMin {
		return MonthsMin
	}
	if limit > 0 && months > limit {
		return limit
	}
	return months
}
