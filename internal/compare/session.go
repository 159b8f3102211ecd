package compare

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"SIPCompare/internal/display"
	"SIPCompare/internal/model"
	"SIPCompare/internal/recorder"
)

// Result is one completed recomputation. Seq increases with every input change.
type Result struct {
	Seq        uint64
	Comparison *model.Comparison
	Err        error
}

// Listener receives every completed recomputation.
type Listener func(Result)

// Session holds the current form inputs and recomputes synchronously whenever one changes.
type Session struct {
	ID string

	mu        sync.Mutex
	engine    *Engine
	rec       recorder.Recorder
	slider    display.Slider
	amount    float64
	months    int
	seq       uint64
	latest    Result
	listeners []Listener
}

// NewSession starts a session with the given defaults and computes the initial result.
// Amounts are snapped onto slider.
func NewSession(engine *Engine, rec recorder.Recorder, slider display.Slider, amount float64, months int) *Session {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	s := &Session{
		ID:     uuid.NewString(),
		engine: engine,
		rec:    rec,
		slider: slider,
		amount: slider.SnapAmount(amount),
		months: months,
	}
	s.mu.Lock()
	s.recompute()
	s.mu.Unlock()
	return s
}

// Subscribe registers l for subsequent recomputations.
// Listeners run synchronously under the session lock and must not call back into the session.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// SetAmount changes the monthly contribution and recomputes. The amount is snapped to the slider step.
func (s *Session) SetAmount(amount float64) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amount = s.slider.SnapAmount(amount)
	return s.recompute()
}

// Update applies both inputs with a single recomputation. A nil field is left unchanged.
func (s *Session) Update(amount *float64, months *int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount != nil {
		s.amount = s.slider.SnapAmount(*amount)
	}
	if months != nil {
		s.months = *months
	}
	return s.recompute()
}

// SetMonths changes the tenure and recomputes. The tenure is clamped to the available history.
func (s *Session) SetMonths(months int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.months = months
	return s.recompute()
}

// Inputs returns the current amount and the clamped tenure.
func (s *Session) Inputs() (amount float64, months int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amount, display.ClampMonths(s.months, s.engine.MaxTenure())
}

// Latest returns the most recently completed result.
func (s *Session) Latest() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// recompute must be called with s.mu held.
func (s *Session) recompute() Result {
	s.seq++
	plan := model.InvestmentPlan{
		TenureMonths: display.ClampMonths(s.months, s.engine.MaxTenure()),
		Contribution: s.amount,
	}
	cmp, err := s.engine.Compare(plan)
	res := Result{Seq: s.seq, Comparison: cmp, Err: err}
	s.latest = res

	if err != nil {
		log.Printf("[WARN] session %s: recompute %d failed: %v", s.ID, res.Seq, err)
	} else if recErr := s.rec.RecordComparison(&recorder.ComparisonEvent{
		Comparison: cmp,
		Trigger:    recorder.TriggerSession,
		SessionID:  s.ID,
	}); recErr != nil {
		log.Printf("[ERROR] record session comparison: %v", recErr)
	}

	for _, l := range s.listeners {
		l(res)
	}
	return res
}
