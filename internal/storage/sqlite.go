// Package storage provides the SQLite run journal. Every finished session is
// stored with its seed, tick rate, configuration and lift ticks so it can be
// listed and replayed later.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Lookup errors.
var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix matches several runs")
)

// Store manages the SQLite database connection for the run journal.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Run is one journaled session.
type Run struct {
	ID         string
	Seed       int64
	TickRate   int
	Ticks      uint64
	Score      int
	EndReason  string
	ConfigYAML []byte
	CreatedAt  time.Time

	// Session ticks a lift was applied on. Only filled by Run.
	Lifts []uint64
}

// Duration returns the in-game length of the run.
func (r Run) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate)
}

// ShortID returns the first block of the run id, enough to address a run
// from the command line.
func (r Run) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			score INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			config_yaml BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_lifts (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun journals a run and its lifts in one transaction. A new id is
// generated when run.ID is empty. Returns the id of the stored run.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, seed, tick_rate, ticks, score, end_reason, config_yaml, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.TickRate, int64(run.Ticks), run.Score, run.EndReason,
		run.ConfigYAML, run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	if len(run.Lifts) > 0 {
		stmt, err := tx.Prepare("INSERT INTO run_lifts (run_id, tick) VALUES (?, ?)")
		if err != nil {
			return "", fmt.Errorf("storage: cannot prepare lift insert: %w", err)
		}
		defer stmt.Close()

		for _, tick := range run.Lifts {
			if _, err := stmt.Exec(run.ID, int64(tick)); err != nil {
				return "", fmt.Errorf("storage: cannot save lift: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

const runColumns = `id, seed, tick_rate, ticks, score, end_reason, config_yaml, created_at`

// Runs retrieves the most recent runs without their lifts.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Run retrieves one run with its lifts. id may be a full id or a unique
// prefix of one.
func (s *Store) Run(id string) (Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE id = ? OR id LIKE ? || '%'
		 ORDER BY id = ? DESC
		 LIMIT 2`,
		id, id, id,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}

	var matches []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, err
		}
		matches = append(matches, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch {
	case id == "" || len(matches) == 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case len(matches) > 1 && matches[0].ID != id:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}

	run := matches[0]
	run.Lifts, err = s.lifts(run.ID)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) lifts(runID string) ([]uint64, error) {
	rows, err := s.db.Query(
		"SELECT tick FROM run_lifts WHERE run_id = ? ORDER BY tick",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query lifts: %w", err)
	}
	defer rows.Close()

	var ticks []uint64
	for rows.Next() {
		var tick int64
		if err := rows.Scan(&tick); err != nil {
			return nil, fmt.Errorf("storage: cannot scan lift: %w", err)
		}
		ticks = append(ticks, uint64(tick))
	}
	return ticks, rows.Err()
}

// DeleteRun removes a run and its lifts.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_lifts WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete lifts: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}

// CountRuns returns the number of journaled runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// timeLayout is how created_at is written.
const timeLayout = "2006-01-02 15:04:05.000"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r         Run
		ticks     int64
		createdAt any
	)
	if err := row.Scan(&r.ID, &r.Seed, &r.TickRate, &ticks, &r.Score, &r.EndReason, &r.ConfigYAML, &createdAt); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
