package calculator

import (
	"errors"
	"math"
	"testing"

	"SIPCompare/internal/apperrors"
	"SIPCompare/internal/model"
)

func makeSeries(prices ...float64) *model.PriceSeries {
	obs := make([]model.PriceObservation, len(prices))
	for i, p := range prices {
		obs[i] = model.PriceObservation{Price: p}
	}
	return &model.PriceSeries{Symbol: "TEST", Observations: obs}
}

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestCompute_ConcreteScenario(t *testing.T) {
	res, err := Compute(makeSeries(100, 90, 120), 3, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantUnits := 1000.0/100 + 1000.0/90 + 1000.0/120
	if !approxEqual(res.TotalUnits, wantUnits) {
		t.Errorf("expected units %.6f, got %.6f", wantUnits, res.TotalUnits)
	}
	want := []float64{1000, 1900, wantUnits * 120}
	if len(res.Trajectory) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(res.Trajectory))
	}
	for i := range want {
		if !approxEqual(res.Trajectory[i], want[i]) {
			t.Errorf("point %d: expected %.6f, got %.6f", i, want[i], res.Trajectory[i])
		}
	}
	if !approxEqual(res.FinalValue(), 3533.333333333333) {
		t.Errorf("unexpected final value %.6f", res.FinalValue())
	}
}

func TestCompute_UnitsMatchSumAndTrajectory(t *testing.T) {
	s := makeSeries(12.5, 30, 7.25, 64, 101, 88.8, 140)
	for tenure := 1; tenure <= s.Len(); tenure++ {
		res, err := Compute(s, tenure, 2500)
		if err != nil {
			t.Fatalf("tenure %d: %v", tenure, err)
		}
		sum := 0.0
		for i := 0; i < tenure; i++ {
			sum += 2500 / s.At(i).Price
		}
		if !approxEqual(res.TotalUnits, sum) {
			t.Errorf("tenure %d: expected units %v, got %v", tenure, sum, res.TotalUnits)
		}
		implied := res.Trajectory[tenure-1] / s.At(tenure-1).Price
		if !approxEqual(implied, res.TotalUnits) {
			t.Errorf("tenure %d: final point implies %v units, total is %v", tenure, implied, res.TotalUnits)
		}
	}
}

func TestCompute_TrajectoryGrowsByOnePoint(t *testing.T) {
	s := makeSeries(5, 4, 6, 8, 3)
	prev, err := Trajectory(s, 3, 100)
	if err != nil {
		t.Fatal(err)
	}
	next, err := Trajectory(s, 4, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(prev) != 3 || len(next) != 4 {
		t.Fatalf("expected 3 and 4 points, got %d and %d", len(prev), len(next))
	}
	for i := range prev {
		if prev[i] != next[i] {
			t.Errorf("point %d recomputed differently: %v vs %v", i, prev[i], next[i])
		}
	}
}

func TestCompute_ZeroContribution(t *testing.T) {
	res, err := Compute(makeSeries(10, 20, 30), 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalUnits != 0 {
		t.Errorf("expected 0 units, got %v", res.TotalUnits)
	}
	for i, v := range res.Trajectory {
		if v != 0 {
			t.Errorf("point %d: expected 0, got %v", i, v)
		}
	}
}

func TestCompute_ZeroTenure(t *testing.T) {
	res, err := Compute(makeSeries(10), 0, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalUnits != 0 || len(res.Trajectory) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		series       *model.PriceSeries
		tenure       int
		contribution float64
		want         error
	}{
		{"empty series", makeSeries(), 1, 1000, apperrors.ErrInvalidData},
		{"nil series", nil, 1, 1000, apperrors.ErrInvalidData},
		{"non-positive price", makeSeries(10, 0, 5), 3, 1000, apperrors.ErrInvalidData},
		{"tenure beyond history", makeSeries(1, 2, 3), 6, 1000, apperrors.ErrInsufficientHistory},
		{"negative contribution", makeSeries(1, 2, 3), 2, -1, apperrors.ErrInvalidPlan},
		{"negative tenure", makeSeries(1, 2, 3), -1, 1000, apperrors.ErrInvalidPlan},
		{"nan contribution", makeSeries(1, 2, 3), 1, math.NaN(), apperrors.ErrInvalidPlan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.series, tt.tenure, tt.contribution)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTotalUnits_PropagatesError(t *testing.T) {
	if _, err := TotalUnits(makeSeries(1), 2, 10); !errors.Is(err, apperrors.ErrInsufficientHistory) {
		t.Errorf("expected insufficient history, got %v", err)
	}
}

func TestMaxTenure(t *testing.T) {
	s := makeSeries(1, 2, 3, 4, 5)
	tests := []struct {
		limit, want int
	}{
		{0, 5},
		{3, 3},
		{40, 5},
	}
	for _, tt := range tests {
		if got := MaxTenure(s, tt.limit); got != tt.want {
			t.Errorf("limit %d: expected %d, got %d", tt.limit, tt.want, got)
		}
	}
}
