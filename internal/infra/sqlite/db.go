// Package sqlite provides SQLite-based persistent storage for lifegame.
// Uses WAL mode for concurrent reads and crash-safe writes.
//
// The local app state lives in a key-value table: history, goals, baseline,
// name and the in-progress day are stored as JSON values under well-known
// keys. The store does not enforce domain invariants (one history entry per
// date is the writers' job); it only moves bytes.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/lifegame-app/lifegame/internal/domain"
)

// Well-known keys in the kv table.
const (
	keyHistory         = "history"
	keyGoals           = "goals"
	keyBaseline        = "baseline"
	keyName            = "name"
	keyCurrentProgress = "current_progress"
	keyCredentials     = "credentials"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Local app state: one JSON value per well-known key.
		`CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Sync server accounts. Only used when running 'lifegame server'.
		`CREATE TABLE IF NOT EXISTS users (
			username      TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			baseline      INTEGER NOT NULL DEFAULT 50,
			goals         TEXT NOT NULL DEFAULT '[]',
			history       TEXT NOT NULL DEFAULT '[]',
			updated_at    INTEGER NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Key-Value primitives ───────────────────────────────────────────────────

func (d *DB) setKV(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// getKV returns ("", nil) when the key is absent.
func (d *DB) getKV(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (d *DB) deleteKV(key string) error {
	_, err := d.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// ─── History ────────────────────────────────────────────────────────────────

// History loads the finalized day entries, empty slice when none.
func (d *DB) History() ([]domain.HistoryEntry, error) {
	raw, err := d.getKV(keyHistory)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	if raw == "" {
		return []domain.HistoryEntry{}, nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

// SaveHistory persists the full history sequence.
func (d *DB) SaveHistory(entries []domain.HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return d.setKV(keyHistory, string(raw))
}

// ─── Goals ──────────────────────────────────────────────────────────────────

// Goals loads the goal set. Returns (nil, nil) when the store has none so
// callers can tell "fresh install" from "empty set".
func (d *DB) Goals() ([]domain.Goal, error) {
	raw, err := d.getKV(keyGoals)
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var goals []domain.Goal
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	return goals, nil
}

// SaveGoals persists the goal set.
func (d *DB) SaveGoals(goals []domain.Goal) error {
	raw, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	return d.setKV(keyGoals, string(raw))
}

// ─── Baseline / Name ────────────────────────────────────────────────────────

// Baseline returns the stored daily target, or the default when unset.
func (d *DB) Baseline() (int, error) {
	raw, err := d.getKV(keyBaseline)
	if err != nil {
		return domain.DefaultBaseline, fmt.Errorf("get baseline: %w", err)
	}
	if raw == "" {
		return domain.DefaultBaseline, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return domain.DefaultBaseline, fmt.Errorf("decode baseline: %w", err)
	}
	return v, nil
}

// SaveBaseline persists the daily target.
func (d *DB) SaveBaseline(v int) error {
	return d.setKV(keyBaseline, strconv.Itoa(v))
}

// Name returns the display name, "" when unset.
func (d *DB) Name() (string, error) {
	v, err := d.getKV(keyName)
	if err != nil {
		return "", fmt.Errorf("get name: %w", err)
	}
	return v, nil
}

// SaveName persists the display name.
func (d *DB) SaveName(name string) error {
	return d.setKV(keyName, name)
}

// ─── Current progress ───────────────────────────────────────────────────────

// CurrentProgress loads the live day record, nil when absent.
func (d *DB) CurrentProgress() (*domain.CurrentProgress, error) {
	raw, err := d.getKV(keyCurrentProgress)
	if err != nil {
		return nil, fmt.Errorf("get current progress: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var p domain.CurrentProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode current progress: %w", err)
	}
	return &p, nil
}

// SaveCurrentProgress persists the live day record.
func (d *DB) SaveCurrentProgress(p domain.CurrentProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode current progress: %w", err)
	}
	return d.setKV(keyCurrentProgress, string(raw))
}

// ─── Credentials ────────────────────────────────────────────────────────────

// Credentials loads the stored sync credentials, nil when logged out.
func (d *DB) Credentials() (*domain.Credentials, error) {
	raw, err := d.getKV(keyCredentials)
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var c domain.Credentials
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return &c, nil
}

// SaveCredentials persists the sync credentials.
func (d *DB) SaveCredentials(c domain.Credentials) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	return d.setKV(keyCredentials, string(raw))
}

// ClearCredentials removes the stored credentials (logout).
func (d *DB) ClearCredentials() error {
	return d.deleteKV(keyCredentials)
}
