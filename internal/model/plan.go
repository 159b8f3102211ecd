package model

// InvestmentPlan describes one SIP request: a fixed contribution every month for TenureMonths months.
type InvestmentPlan struct {
	TenureMonths int     `json:"tenure_months"`
	Contribution float64 `json:"contribution"`
}

// Invested returns the total amount put in over the tenure.
func (p InvestmentPlan) Invested() float64 {
	return float64(p.TenureMonths) * p.Contribution
}

// CalculationResult is the outcome of one calculation. Units are instrument units, not currency.
type CalculationResult struct {
	TotalUnits float64   `json:"total_units"`
	Trajectory []float64 `json:"trajectory"`
}

// FinalValue returns the last trajectory point, or 0 for an empty trajectory.
func (r *CalculationResult) FinalValue() float64 {
	if len(r.Trajectory) == 0 {
		return 0
	}
	return r.Trajectory[len(r.Trajectory)-1]
}
