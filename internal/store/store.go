// Package store provides SQLite-backed persistence for induction runs.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schema defines the results tables: one row per run, one per stage
// record, one per induced noun.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    corpus_path TEXT NOT NULL,
    config TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS stage_stats (
    run_id TEXT NOT NULL,
    stage TEXT NOT NULL,
    coverage REAL NOT NULL,
    accuracy REAL NOT NULL,
    PRIMARY KEY (run_id, stage)
);

CREATE TABLE IF NOT EXISTS assignments (
    run_id TEXT NOT NULL,
    noun TEXT NOT NULL,
    gender TEXT NOT NULL,
    PRIMARY KEY (run_id, noun)
);

CREATE INDEX IF NOT EXISTS idx_assignments_noun ON assignments(noun);
`

// Store is the SQLite-backed results store.
type Store struct {
	db *sql.DB
}

// RunRecord is one archived induction run.
type RunRecord struct {
	ID         string `json:"id"`
	CorpusPath string `json:"corpus_path"`
	Config     string `json:"config"`
	CreatedAt  int64  `json:"created_at"`
}

// StageRecord is one archived coverage/accuracy record.
type StageRecord struct {
	Stage    string  `json:"stage"`
	Coverage float64 `json:"coverage"`
	Accuracy float64 `json:"accuracy"`
}

// Open opens (creating if necessary) the results database at path.
// Pass ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun archives a run header. The config column holds the JSON
// argument snapshot.
func (s *Store) SaveRun(id, corpusPath, configJSON string) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, corpus_path, config, created_at) VALUES (?, ?, ?, ?)`,
		id, corpusPath, configJSON, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save run %s: %w", id, err)
	}
	return nil
}

// SaveStageStats archives one coverage/accuracy record for a run.
func (s *Store) SaveStageStats(runID string, rec StageRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO stage_stats (run_id, stage, coverage, accuracy) VALUES (?, ?, ?, ?)`,
		runID, rec.Stage, rec.Coverage, rec.Accuracy)
	if err != nil {
		return fmt.Errorf("save stats %s/%s: %w", runID, rec.Stage, err)
	}
	return nil
}

// SaveAssignment archives the full noun→gender mapping of a run in one
// transaction. Nouns are inserted in slice order.
func (s *Store) SaveAssignment(runID string, nouns []string, genders map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin assignment tx: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO assignments (run_id, noun, gender) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare assignment insert: %w", err)
	}
	defer stmt.Close()
	for _, noun := range nouns {
		if _, err := stmt.Exec(runID, noun, genders[noun]); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert assignment %q: %w", noun, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assignment tx: %w", err)
	}
	return nil
}

// Gender looks up the induced gender of a noun in a run. The second
// return value is false when the noun is absent.
func (s *Store) Gender(runID, noun string) (string, bool, error) {
	var gender string
	err := s.db.QueryRow(
		`SELECT gender FROM assignments WHERE run_id = ? AND noun = ?`,
		runID, noun).Scan(&gender)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup %q: %w", noun, err)
	}
	return gender, true, nil
}

// LatestRunID returns the most recently archived run, or "" when the
// store is empty.
func (s *Store) LatestRunID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}

// Runs lists the archived runs, newest first.
func (s *Store) Runs() ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, corpus_path, config, created_at FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.CorpusPath, &r.Config, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StageStats lists the coverage/accuracy records of a run in insertion
// order.
func (s *Store) StageStats(runID string) ([]StageRecord, error) {
	rows, err := s.db.Query(
		`SELECT stage, coverage, accuracy FROM stage_stats WHERE run_id = ? ORDER BY rowid`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	var out []StageRecord
	for rows.Next() {
		var r StageRecord
		if err := rows.Scan(&r.Stage, &r.Coverage, &r.Accuracy); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
