package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lifegame-app/lifegame/internal/domain"
)

// ─── Sync server user repository ────────────────────────────────────────────
// Accounts live in their own table; goals and history are stored as JSON
// blobs since the server never inspects them beyond pass-through merging.

// CreateUser inserts a new account. Returns domain.ErrUserExists if the
// username is taken.
func (d *DB) CreateUser(u domain.User, passwordHash string) error {
	goals, history, err := encodeUserData(u)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(
		`INSERT INTO users (username, password_hash, name, baseline, goals, history, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, passwordHash, u.Name, u.Baseline, goals, history, time.Now().Unix(),
	)
	if err != nil {
		// UNIQUE violation on the primary key means the name is taken.
		var exists int
		if qerr := d.db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, u.Username).Scan(&exists); qerr == nil && exists > 0 {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser loads an account and its password hash. Returns
// domain.ErrUserNotFound for unknown usernames.
func (d *DB) GetUser(username string) (*domain.User, string, error) {
	var (
		u       domain.User
		hash    string
		goals   string
		history string
	)
	err := d.db.QueryRow(
		`SELECT username, password_hash, name, baseline, goals, history
		 FROM users WHERE username = ?`, username,
	).Scan(&u.Username, &hash, &u.Name, &u.Baseline, &goals, &history)
	if err == sql.ErrNoRows {
		return nil, "", domain.ErrUserNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("select user: %w", err)
	}

	if err := json.Unmarshal([]byte(goals), &u.Goals); err != nil {
		return nil, "", fmt.Errorf("decode user goals: %w", err)
	}
	if err := json.Unmarshal([]byte(history), &u.History); err != nil {
		return nil, "", fmt.Errorf("decode user history: %w", err)
	}
	return &u, hash, nil
}

// UpdateUser overwrites an account's data fields (not its password).
func (d *DB) UpdateUser(u domain.User) error {
	goals, history, err := encodeUserData(u)
	if err != nil {
		return err
	}

	res, err := d.db.Exec(
		`UPDATE users SET name = ?, baseline = ?, goals = ?, history = ?, updated_at = ?
		 WHERE username = ?`,
		u.Name, u.Baseline, goals, history, time.Now().Unix(), u.Username,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func encodeUserData(u domain.User) (goals, history string, err error) {
	g := u.Goals
	if g == nil {
		g = []domain.Goal{}
	}
	h := u.History
	if h == nil {
		h = []domain.HistoryEntry{}
	}

	gb, err := json.Marshal(g)
	if err != nil {
		return "", "", fmt.Errorf("encode user goals: %w", err)
	}
	hb, err := json.Marshal(h)
	if err != nil {
		return "", "", fmt.Errorf("encode user history: %w", err)
	}
	return string(gb), string(hb), nil
}
