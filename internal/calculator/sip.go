package calculator

import (
	"fmt"
	"math"

	"SIPCompare/internal/apperrors"
	"SIPCompare/internal/model"
)

// ValidatePlan rejects negative or non-finite plan inputs.
func ValidatePlan(plan model.InvestmentPlan) error {
	if plan.TenureMonths < 0 {
		return fmt.Errorf("%w: tenure %d is negative", apperrors.ErrInvalidPlan, plan.TenureMonths)
	}
	if plan.Contribution < 0 || math.IsNaN(plan.Contribution) || math.IsInf(plan.Contribution, 0) {
		return fmt.Errorf("%w: contribution %v", apperrors.ErrInvalidPlan, plan.Contribution)
	}
	return nil
}

// Compute simulates buying a fixed contribution worth of units at each of the first tenure periods.
// TotalUnits is Σ contribution/price[i]; Trajectory[i] values the units held after period i at price[i].
// Both come from the same accumulation, so Trajectory[t-1]/price[t-1] equals TotalUnits.
// Results are full precision; rounding is left to the caller.
func Compute(s *model.PriceSeries, tenure int, contribution float64) (*model.CalculationResult, error) {
	if err := ValidatePlan(model.InvestmentPlan{TenureMonths: tenure, Contribution: contribution}); err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", apperrors.ErrInvalidData)
	}
	if tenure > s.Len() {
		return nil, fmt.Errorf("%w: %s has %d periods, %d requested", apperrors.ErrInsufficientHistory, s.Symbol, s.Len(), tenure)
	}

	res := &model.CalculationResult{Trajectory: make([]float64, 0, tenure)}
	for i := 0; i < tenure; i++ {
		price := s.At(i).Price
		if !(price > 0) {
			return nil, fmt.Errorf("%w: price %v at period %d", apperrors.ErrInvalidData, price, i)
		}
		res.TotalUnits += contribution / price
		res.Trajectory = append(res.Trajectory, res.TotalUnits*price)
	}
	return res, nil
}

// TotalUnits returns only the accumulated units of Compute.
func TotalUnits(s *model.PriceSeries, tenure int, contribution float64) (float64, error) {
	res, err := Compute(s, tenure, contribution)
	if err != nil {
		return 0, err
	}
	return res.TotalUnits, nil
}

// Trajectory returns only the cumulative value trajectory of Compute.
func Trajectory(s *model.PriceSeries, tenure int, contribution float64) ([]float64, error) {
	res, err := Compute(s, tenure, contribution)
	if err != nil {
		return nil, err
	}
	return res.Trajectory, nil
}

// MaxTenure returns the history length of s, capped at limit when limit is positive.
// Callers clamp user tenure to this before calling Compute.
func MaxTenure(s *model.PriceSeries, limit int) int {
	n := s.Len()
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
