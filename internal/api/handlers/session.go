package handlers

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"SIPCompare/internal/api/response"
	"SIPCompare/internal/compare"
	"SIPCompare/internal/display"
	"SIPCompare/internal/recorder"
)

// DefaultMaxSessions bounds the number of live sessions kept in memory.
const DefaultMaxSessions = 256

// SessionHandler keeps live form sessions in memory and recomputes them as inputs change.
type SessionHandler struct {
	engine        *compare.Engine
	rec           recorder.Recorder
	slider        display.Slider
	defaultAmount float64
	defaultMonths int
	maxSessions   int

	mu       sync.Mutex
	sessions map[string]*compare.Session
	order    []string
}

// NewSessionHandler creates a SessionHandler. When more than maxSessions are open the oldest is dropped.
func NewSessionHandler(engine *compare.Engine, rec recorder.Recorder, slider display.Slider, defaultAmount float64, defaultMonths, maxSessions int) *SessionHandler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &SessionHandler{
		engine:        engine,
		rec:           rec,
		slider:        slider,
		defaultAmount: defaultAmount,
		defaultMonths: defaultMonths,
		maxSessions:   maxSessions,
		sessions:      make(map[string]*compare.Session),
	}
}

// SessionView is the body of every session reply.
type SessionView struct {
	ID     string       `json:"id"`
	Seq    uint64       `json:"seq"`
	Amount float64      `json:"amount"`
	Months int          `json:"months"`
	Result *CompareView `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, _ *http.Request) {
	s := compare.NewSession(h.engine, h.rec, h.slider, h.defaultAmount, h.defaultMonths)

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.order = append(h.order, s.ID)
	for len(h.order) > h.maxSessions {
		delete(h.sessions, h.order[0])
		h.order = h.order[1:]
	}
	h.mu.Unlock()

	h.respond(w, http.StatusCreated, s, s.Latest())
}

// Get handles GET /api/sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, s, s.Latest())
}

// Update handles PUT /api/sessions/{id}?amount=&months=.
// Amounts are snapped onto the slider and months are clamped to the available history.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	var amount *float64
	if v := q.Get("amount"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return
		}
		amount = &a
	}
	var months *int
	if v := q.Get("months"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid months", err.Error())
			return
		}
		months = &m
	}
	if amount == nil && months == nil {
		response.RespondError(w, http.StatusBadRequest, "nothing to update", "set amount or months")
		return
	}

	h.respond(w, http.StatusOK, s, s.Update(amount, months))
}

// Delete handles DELETE /api/sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	_, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
	h.mu.Unlock()

	if !ok {
		response.RespondError(w, http.StatusNotFound, "session not found", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*compare.Session, bool) {
	id := chi.URLParam(r, "id")
	h.mu.Lock()
	s, ok := h.sessions[id]
	h.mu.Unlock()
	if !ok {
		response.RespondError(w, http.StatusNotFound, "session not found", id)
	}
	return s, ok
}

func (h *SessionHandler) respond(w http.ResponseWriter, status int, s *compare.Session, res compare.Result) {
	amount, months := s.Inputs()
	view := SessionView{ID: s.ID, Seq: res.Seq, Amount: amount, Months: months}
	if res.Err != nil {
		view.Error = res.Err.Error()
		response.RespondJSON(w, status, view)
		return
	}
	cv, err := buildCompareView(res.Comparison, h.engine.MaxTenure())
	if err != nil {
		log.Printf("[WARN] session %s: render result %d: %v", s.ID, res.Seq, err)
		view.Error = err.Error()
		response.RespondJSON(w, status, view)
		return
	}
	view.Result = cv
	response.RespondJSON(w, status, view)
}
