// Package storage keeps a log of demo runs in SQLite (modernc.org/sqlite, no
// cgo).
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Run modes recorded in the log.
const (
	ModeInteractive = "interactive"
	ModeHeadless    = "headless"
	ModeSSH         = "ssh"
)

// RunEntry is one recorded demo run.
type RunEntry struct {
	ID            int64
	DemoID        string
	Mode          string
	Frames        int
	SimSteps      int
	FinalPosition float64
	AvgFPS        float64
	Duration      time.Duration
	CreatedAt     time.Time // set by SaveRun when zero
}

// DemoSummary aggregates every run of one demo.
type DemoSummary struct {
	DemoID     string
	Runs       int
	TotalSteps int
	AvgFPS     float64
	LastRunAt  time.Time
}

// migrations are applied in order; PRAGMA user_version remembers how many
// already ran.
var migrations = []string{
	`CREATE TABLE runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		demo_id        TEXT    NOT NULL,
		mode           TEXT    NOT NULL,
		frames         INTEGER NOT NULL DEFAULT 0,
		sim_steps      INTEGER NOT NULL DEFAULT 0,
		final_position REAL    NOT NULL DEFAULT 0,
		avg_fps        REAL    NOT NULL DEFAULT 0,
		duration_ms    INTEGER NOT NULL DEFAULT 0,
		created_at     INTEGER NOT NULL
	)`,
	`CREATE INDEX idx_runs_demo ON runs(demo_id, id DESC)`,
}

const runFields = `id, demo_id, mode, frames, sim_steps, final_position, avg_fps, duration_ms, created_at`

// Store is the run log.
type Store struct {
	db *sql.DB
}

// Open opens the log at path, creating the file, its directory and the
// schema as needed. A leading ~ is the user's home directory.
func Open(path string) (*Store, error) {
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrating %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun appends e to the log and returns its ID. An empty Mode is stored
// as ModeInteractive.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	if e.DemoID == "" {
		return 0, errors.New("storage: run has no demo id")
	}
	if e.Mode == "" {
		e.Mode = ModeInteractive
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (demo_id, mode, frames, sim_steps, final_position, avg_fps, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.DemoID, e.Mode, e.Frames, e.SimSteps, e.FinalPosition, e.AvgFPS,
		e.Duration.Milliseconds(), e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run of %s: %w", e.DemoID, err)
	}
	return res.LastInsertId()
}

// RecentRuns returns up to limit runs of demoID, newest first.
// limit <= 0 means 10.
func (s *Store) RecentRuns(demoID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(`WHERE demo_id = ? ORDER BY id DESC LIMIT ?`, demoID, limit)
}

// AllRuns returns every run of demoID, newest first.
func (s *Store) AllRuns(demoID string) ([]RunEntry, error) {
	return s.queryRuns(`WHERE demo_id = ? ORDER BY id DESC`, demoID)
}

func (s *Store) queryRuns(tail string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(`SELECT `+runFields+` FROM runs `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var out []RunEntry
	for rows.Next() {
		var (
			e         RunEntry
			durMS     int64
			createdMS int64
		)
		if err := rows.Scan(&e.ID, &e.DemoID, &e.Mode, &e.Frames, &e.SimSteps,
			&e.FinalPosition, &e.AvgFPS, &durMS, &createdMS); err != nil {
			return nil, fmt.Errorf("storage: cannot read run: %w", err)
		}
		e.Duration = time.Duration(durMS) * time.Millisecond
		e.CreatedAt = time.UnixMilli(createdMS)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read runs: %w", err)
	}
	return out, nil
}

func (s *Store) RunCount(demoID string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE demo_id = ?`, demoID).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes every run of demoID.
func (s *Store) ClearRuns(demoID string) error {
	if _, err := s.db.Exec(`DELETE FROM runs WHERE demo_id = ?`, demoID); err != nil {
		return fmt.Errorf("storage: cannot clear runs of %s: %w", demoID, err)
	}
	return nil
}

// Summary aggregates the runs of demoID. No runs gives a zero summary.
func (s *Store) Summary(demoID string) (DemoSummary, error) {
	var (
		sum    = DemoSummary{DemoID: demoID}
		steps  sql.NullInt64
		fps    sql.NullFloat64
		lastMS sql.NullInt64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(sim_steps), AVG(avg_fps), MAX(created_at) FROM runs WHERE demo_id = ?`,
		demoID,
	).Scan(&sum.Runs, &steps, &fps, &lastMS)
	if err != nil {
		return sum, fmt.Errorf("storage: cannot summarize runs of %s: %w", demoID, err)
	}
	sum.TotalSteps = int(steps.Int64)
	sum.AvgFPS = fps.Float64
	if lastMS.Valid {
		sum.LastRunAt = time.UnixMilli(lastMS.Int64)
	}
	return sum, nil
}
