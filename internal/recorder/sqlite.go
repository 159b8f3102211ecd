package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists computed comparisons to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS comparisons (
			id               TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			trig             TEXT NOT NULL,
			session_id       TEXT,
			tenure_months    INTEGER,
			contribution     REAL,
			invested         REAL,
			primary_symbol   TEXT,
			primary_units    REAL,
			primary_value    REAL,
			benchmark_symbol TEXT,
			benchmark_units  REAL,
			benchmark_value  REAL,
			difference       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_ts ON comparisons(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordComparison(evt *ComparisonEvent) error {
	if evt == nil || evt.Comparison == nil {
		return fmt.Errorf("record comparison: nil event")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cmp := evt.Comparison
	ts := cmp.ComputedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO comparisons
		(id, timestamp, trig, session_id, tenure_months, contribution, invested,
		 primary_symbol, primary_units, primary_value,
		 benchmark_symbol, benchmark_units, benchmark_value, difference)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), ts.UnixNano(), evt.Trigger, evt.SessionID,
		cmp.Plan.TenureMonths, cmp.Plan.Contribution, cmp.Invested,
		cmp.Primary.Instrument.Symbol, cmp.Primary.Result.TotalUnits, cmp.Primary.DisplayValue,
		cmp.Benchmark.Instrument.Symbol, cmp.Benchmark.Result.TotalUnits, cmp.Benchmark.DisplayValue,
		cmp.Difference,
	)
	return err
}

// History returns up to limit events, newest first.
func (r *SQLiteRecorder) History(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, trig, COALESCE(session_id, ''),
		tenure_months, contribution, invested,
		primary_symbol, primary_units, primary_value,
		benchmark_symbol, benchmark_units, benchmark_value, difference
		FROM comparisons ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Trigger, &e.SessionID,
			&e.TenureMonths, &e.Contribution, &e.Invested,
			&e.PrimarySymbol, &e.PrimaryUnits, &e.PrimaryValue,
			&e.BenchmarkSymbol, &e.BenchmarkUnits, &e.BenchmarkValue, &e.Difference); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Timestamp = time.Unix(0, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
