package recorder

import (
	"time"

	"SIPCompare/internal/model"
)

// Trigger values stored with each event.
const (
	TriggerRequest = "REQUEST"
	TriggerSession = "SESSION"
	TriggerDigest  = "DIGEST"
)

// ComparisonEvent holds one computed comparison and what caused it.
type ComparisonEvent struct {
	Comparison *model.Comparison
	Trigger    string
	SessionID  string // empty unless Trigger is SESSION
}

// HistoryEntry is a flattened stored comparison.
type HistoryEntry struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Trigger         string    `json:"trigger"`
	SessionID       string    `json:"session_id,omitempty"`
	TenureMonths    int       `json:"tenure_months"`
	Contribution    float64   `json:"contribution"`
	Invested        float64   `json:"invested"`
	PrimarySymbol   string    `json:"primary_symbol"`
	PrimaryUnits    float64   `json:"primary_units"`
	PrimaryValue    float64   `json:"primary_value"`
	BenchmarkSymbol string    `json:"benchmark_symbol"`
	BenchmarkUnits  float64   `json:"benchmark_units"`
	BenchmarkValue  float64   `json:"benchmark_value"`
	Difference      float64   `json:"difference"`
}

// Recorder keeps a history of computed comparisons for later analysis.
type Recorder interface {
	RecordComparison(evt *ComparisonEvent) error
	History(limit int) ([]HistoryEntry, error)
	Close() error
}
