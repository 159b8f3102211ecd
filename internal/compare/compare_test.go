package compare

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"SIPCompare/internal/apperrors"
	"SIPCompare/internal/collector"
	"SIPCompare/internal/display"
	"SIPCompare/internal/model"
	"SIPCompare/internal/recorder"
)

// descending returns rows most-recent-first for ascending prices.
func descending(prices ...float64) []model.RawRecord {
	rows := make([]model.RawRecord, len(prices))
	for i, p := range prices {
		rows[len(prices)-1-i] = model.RawRecord{Price: p}
	}
	return rows
}

func newTestEngine(t *testing.T, limit int) *Engine {
	t.Helper()
	cat, err := collector.NewCollector(
		collector.Entry{
			Instrument: model.Instrument{Symbol: "SOL", Name: "Solana", DisplayMultiplier: 100},
			Source:     &collector.StaticSource{Label: "sol", Rows: descending(100, 90, 120, 150)},
		},
		collector.Entry{
			Instrument: model.Instrument{Symbol: "NIFTY", Name: "Nifty", DisplayMultiplier: 10},
			Source:     &collector.StaticSource{Label: "nifty", Rows: descending(10, 10, 10)},
		},
	).Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	e, err := NewEngine(cat, "SOL", "NIFTY", limit)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	e.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func TestEngine_Compare(t *testing.T) {
	e := newTestEngine(t, 40)
	cmp, err := e.Compare(model.InvestmentPlan{TenureMonths: 3, Contribution: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantUnits := 1000.0/100 + 1000.0/90 + 1000.0/120
	if math.Abs(cmp.Primary.Result.TotalUnits-wantUnits) > 1e-9 {
		t.Errorf("expected primary units %v, got %v", wantUnits, cmp.Primary.Result.TotalUnits)
	}
	if cmp.Primary.DisplayValue != 2944 {
		t.Errorf("expected primary display 2944, got %v", cmp.Primary.DisplayValue)
	}
	if cmp.Benchmark.Result.TotalUnits != 300 || cmp.Benchmark.DisplayValue != 3000 {
		t.Errorf("unexpected benchmark outcome: %+v", cmp.Benchmark)
	}
	if cmp.Invested != 3000 {
		t.Errorf("expected invested 3000, got %v", cmp.Invested)
	}
	if cmp.Difference != 2944-3000 {
		t.Errorf("expected difference -56, got %v", cmp.Difference)
	}
	if len(cmp.Primary.Result.Trajectory) != 3 || len(cmp.Benchmark.Result.Trajectory) != 3 {
		t.Errorf("expected 3-point trajectories")
	}
}

func TestEngine_MaxTenure(t *testing.T) {
	if got := newTestEngine(t, 40).MaxTenure(); got != 3 {
		t.Errorf("expected shortest history 3, got %d", got)
	}
	if got := newTestEngine(t, 2).MaxTenure(); got != 2 {
		t.Errorf("expected limit 2, got %d", got)
	}
}

func TestEngine_Errors(t *testing.T) {
	e := newTestEngine(t, 40)
	if _, err := e.Compare(model.InvestmentPlan{TenureMonths: 4, Contribution: 1000}); !errors.Is(err, apperrors.ErrInsufficientHistory) {
		t.Errorf("expected insufficient history, got %v", err)
	}
	if _, err := e.Compare(model.InvestmentPlan{TenureMonths: 2, Contribution: -5}); !errors.Is(err, apperrors.ErrInvalidPlan) {
		t.Errorf("expected invalid plan, got %v", err)
	}
}

func TestEngine_RefusesUndisplayableTotals(t *testing.T) {
	e := newTestEngine(t, 40)
	for _, amount := range []float64{1e300, math.MaxFloat64} {
		_, err := e.Compare(model.InvestmentPlan{TenureMonths: 3, Contribution: amount})
		if !errors.Is(err, apperrors.ErrAmountOutOfRange) {
			t.Errorf("amount %v: expected out of range, got %v", amount, err)
		}
	}
}

func TestNewEngine_UnknownInstrument(t *testing.T) {
	cat, err := collector.NewCollector().Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(cat, "SOL", "NIFTY", 40); !errors.Is(err, apperrors.ErrUnknownInstrument) {
		t.Errorf("expected unknown instrument, got %v", err)
	}
}

func TestSession_RecomputesOnChange(t *testing.T) {
	e := newTestEngine(t, 40)
	s := NewSession(e, nil, display.DefaultSlider, 1000, 1)

	first := s.Latest()
	if first.Err != nil || first.Seq != 1 {
		t.Fatalf("unexpected initial result: %+v", first)
	}
	if first.Comparison.Plan.TenureMonths != 1 {
		t.Errorf("expected tenure 1, got %d", first.Comparison.Plan.TenureMonths)
	}

	var seen []uint64
	s.Subscribe(func(r Result) { seen = append(seen, r.Seq) })

	r := s.SetMonths(2)
	if r.Seq != 2 || r.Comparison.Plan.TenureMonths != 2 {
		t.Errorf("unexpected result after SetMonths: %+v", r)
	}
	r = s.SetAmount(2000)
	if r.Seq != 3 || r.Comparison.Invested != 4000 {
		t.Errorf("unexpected result after SetAmount: seq=%d invested=%v", r.Seq, r.Comparison.Invested)
	}
	if len(seen) != 2 || seen[0] != 2 || seen[1] != 3 {
		t.Errorf("listener saw %v", seen)
	}
	if s.Latest().Seq != 3 {
		t.Errorf("expected latest seq 3, got %d", s.Latest().Seq)
	}
}

func TestSession_ClampsMonths(t *testing.T) {
	s := NewSession(newTestEngine(t, 40), nil, display.DefaultSlider, 1000, 1)
	r := s.SetMonths(40)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Comparison.Plan.TenureMonths != 3 {
		t.Errorf("expected tenure clamped to 3, got %d", r.Comparison.Plan.TenureMonths)
	}
	if _, months := s.Inputs(); months != 3 {
		t.Errorf("expected inputs to report 3 months, got %d", months)
	}
}

func TestSession_SnapsAmount(t *testing.T) {
	s := NewSession(newTestEngine(t, 40), nil, display.DefaultSlider, 1000, 1)
	tests := []struct {
		in, want float64
	}{
		{-1, 1000},
		{2400, 2000},
		{1e300, 100000},
		{math.Inf(1), 100000},
	}
	for _, tt := range tests {
		r := s.SetAmount(tt.in)
		if r.Err != nil {
			t.Errorf("SetAmount(%v): unexpected error: %v", tt.in, r.Err)
			continue
		}
		if r.Comparison.Plan.Contribution != tt.want {
			t.Errorf("SetAmount(%v): expected contribution %v, got %v", tt.in, tt.want, r.Comparison.Plan.Contribution)
		}
	}
	if amount, _ := s.Inputs(); amount != 100000 {
		t.Errorf("expected inputs to report 100000, got %v", amount)
	}
}

func TestSession_UpdateRecomputesOnce(t *testing.T) {
	s := NewSession(newTestEngine(t, 40), nil, display.DefaultSlider, 1000, 1)
	amount, months := 3000.0, 2
	r := s.Update(&amount, &months)
	if r.Err != nil || r.Seq != 2 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.Comparison.Invested != 6000 {
		t.Errorf("expected invested 6000, got %v", r.Comparison.Invested)
	}
	r = s.Update(nil, nil)
	if r.Seq != 3 || r.Comparison.Invested != 6000 {
		t.Errorf("expected unchanged inputs, got seq=%d invested=%v", r.Seq, r.Comparison.Invested)
	}
}

func TestSession_RecordsComparisons(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "s.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	s := NewSession(newTestEngine(t, 40), rec, display.DefaultSlider, 1000, 1)
	s.SetMonths(2)

	hist, err := rec.History(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 recorded comparisons, got %d", len(hist))
	}
	for _, h := range hist {
		if h.SessionID != s.ID || h.Trigger != recorder.TriggerSession {
			t.Errorf("unexpected entry: %+v", h)
		}
	}
}
