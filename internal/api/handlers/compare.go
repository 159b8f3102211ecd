package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"SIPCompare/internal/api/response"
	"SIPCompare/internal/apperrors"
	"SIPCompare/internal/compare"
	"SIPCompare/internal/display"
	"SIPCompare/internal/model"
	"SIPCompare/internal/recorder"
)

// CompareHandler serves comparison results to the front end.
type CompareHandler struct {
	engine        *compare.Engine
	rec           recorder.Recorder
	slider        display.Slider
	defaultAmount float64
	defaultMonths int
}

// NewCompareHandler creates a CompareHandler. Requested amounts outside slider are rejected.
func NewCompareHandler(engine *compare.Engine, rec recorder.Recorder, slider display.Slider, defaultAmount float64, defaultMonths int) *CompareHandler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &CompareHandler{engine: engine, rec: rec, slider: slider, defaultAmount: defaultAmount, defaultMonths: defaultMonths}
}

// OutcomeView is one instrument's result as displayed.
type OutcomeView struct {
	Symbol       string        `json:"symbol"`
	Name         string        `json:"name"`
	TotalUnits   float64       `json:"total_units"`
	RoundedUnits float64       `json:"rounded_units"`
	Value        float64       `json:"value"`
	ValueText    string        `json:"value_text"`
	Chart        display.Chart `json:"chart"`
}

// CompareView is the body of GET /api/compare.
type CompareView struct {
	Amount         float64     `json:"amount"`
	Months         int         `json:"months"`
	MaxMonths      int         `json:"max_months"`
	TenureColor    string      `json:"tenure_color"`
	Invested       float64     `json:"invested"`
	InvestedText   string      `json:"invested_text"`
	Primary        OutcomeView `json:"primary"`
	Benchmark      OutcomeView `json:"benchmark"`
	Difference     float64     `json:"difference"`
	DifferenceText string      `json:"difference_text"`
	Headline       string      `json:"headline"`
}

func newOutcomeView(o model.InstrumentOutcome) (OutcomeView, error) {
	text, err := display.FormatINR(o.DisplayValue)
	if err != nil {
		return OutcomeView{}, err
	}
	chart, err := display.ChartSeries(o.Result.Trajectory)
	if err != nil {
		return OutcomeView{}, err
	}
	return OutcomeView{
		Symbol:       o.Instrument.Symbol,
		Name:         o.Instrument.Name,
		TotalUnits:   o.Result.TotalUnits,
		RoundedUnits: display.RoundUnits(o.Result.TotalUnits),
		Value:        o.DisplayValue,
		ValueText:    text,
		Chart:        chart,
	}, nil
}

// buildCompareView renders a comparison for the front end.
func buildCompareView(cmp *model.Comparison, maxMonths int) (*CompareView, error) {
	primary, err := newOutcomeView(cmp.Primary)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmp.Primary.Instrument.Symbol, err)
	}
	benchmark, err := newOutcomeView(cmp.Benchmark)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmp.Benchmark.Instrument.Symbol, err)
	}
	invested, err := display.FormatINR(cmp.Invested)
	if err != nil {
		return nil, fmt.Errorf("invested: %w", err)
	}
	difference, err := display.FormatINR(cmp.Difference)
	if err != nil {
		return nil, fmt.Errorf("difference: %w", err)
	}
	headline, err := display.Headline(cmp)
	if err != nil {
		return nil, fmt.Errorf("headline: %w", err)
	}
	return &CompareView{
		Amount:         cmp.Plan.Contribution,
		Months:         cmp.Plan.TenureMonths,
		MaxMonths:      maxMonths,
		TenureColor:    display.TenureColor(cmp.Plan.TenureMonths),
		Invested:       cmp.Invested,
		InvestedText:   invested,
		Primary:        primary,
		Benchmark:      benchmark,
		Difference:     cmp.Difference,
		DifferenceText: difference,
		Headline:       headline,
	}, nil
}

// respondCompareError maps comparison and display failures to status codes.
func respondCompareError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidPlan):
		response.RespondError(w, http.StatusBadRequest, "invalid plan", err.Error())
	case errors.Is(err, apperrors.ErrAmountOutOfRange):
		response.RespondError(w, http.StatusBadRequest, "amount out of range", err.Error())
	case errors.Is(err, apperrors.ErrInsufficientHistory):
		response.RespondError(w, http.StatusUnprocessableEntity, "tenure exceeds available history", err.Error())
	default:
		log.Printf("[ERROR] compare: %v", err)
		response.RespondError(w, http.StatusInternalServerError, "comparison failed", err.Error())
	}
}

// Compare handles GET /api/compare?amount=&months=.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount := h.defaultAmount
	if v := q.Get("amount"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return
		}
		if !h.slider.Contains(a) {
			response.RespondError(w, http.StatusBadRequest, "amount out of range",
				fmt.Sprintf("amount must be within %v..%v", h.slider.AmountMin, h.slider.AmountMax))
			return
		}
		amount = a
	}
	months := h.defaultMonths
	if v := q.Get("months"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid months", err.Error())
			return
		}
		months = m
	}

	cmp, err := h.engine.Compare(model.InvestmentPlan{TenureMonths: months, Contribution: amount})
	if err != nil {
		respondCompareError(w, err)
		return
	}
	view, err := buildCompareView(cmp, h.engine.MaxTenure())
	if err != nil {
		respondCompareError(w, err)
		return
	}

	if err := h.rec.RecordComparison(&recorder.ComparisonEvent{Comparison: cmp, Trigger: recorder.TriggerRequest}); err != nil {
		log.Printf("[ERROR] record comparison: %v", err)
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// InstrumentsView is the body of GET /api/instruments.
type InstrumentsView struct {
	Primary   model.Instrument `json:"primary"`
	Benchmark model.Instrument `json:"benchmark"`
	MaxMonths int              `json:"max_months"`
	display.Slider
}

// Instruments handles GET /api/instruments.
func (h *CompareHandler) Instruments(w http.ResponseWriter, _ *http.Request) {
	p, b := h.engine.Instruments()
	response.RespondJSON(w, http.StatusOK, InstrumentsView{
		Primary:   p,
		Benchmark: b,
		MaxMonths: h.engine.MaxTenure(),
		Slider:    h.slider,
	})
}

// History handles GET /api/history?limit=.
func (h *CompareHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l <= 0 {
			response.RespondError(w, http.StatusBadRequest, "invalid limit", v)
			return
		}
		limit = l
	}
	entries, err := h.rec.History(limit)
	if err != nil {
		log.Printf("[ERROR] history: %v", err)
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve history", err.Error())
		return
	}
	if entries == nil {
		entries = []recorder.HistoryEntry{}
	}
	response.RespondJSON(w, http.StatusOK, entries)
}
