// Package storage provides credential persistence implementations.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Storage keys mirroring the web client's local storage.
const (
	keyUser  = "foodexplorer:user"
	keyToken = "foodexplorer:token"
)

// Compile-time interface check.
var _ domain.CredentialStore = (*SQLiteStore)(nil)

// SQLiteStore persists the signed-in user and token in a local SQLite
// database. Both values are written and cleared in one transaction, so
// the store never holds one without the other.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

// OpenSQLite opens (creating if needed) the credential database at path.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening credential database: %w", err)
	}

	// Set pragmas for correctness on concurrent startup.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS credentials (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating credentials table: %w", err)
	}

	return &SQLiteStore{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores the user profile and token under their fixed keys.
func (s *SQLiteStore) Save(ctx context.Context, user *domain.User, token string) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshaling user profile: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`
	if _, err := tx.ExecContext(ctx, upsert, keyUser, string(profile)); err != nil {
		return fmt.Errorf("storing user profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyToken, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}

	s.log.Debug("persisted credentials for %s", user.Email)
	return nil
}

// Load reads back the persisted user and token. Returns
// domain.ErrNotFound when either key is missing.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.User, string, error) {
	profile, err := s.value(ctx, keyUser)
	if err != nil {
		return nil, "", err
	}
	token, err := s.value(ctx, keyToken)
	if err != nil {
		return nil, "", err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(profile), &user); err != nil {
		return nil, "", fmt.Errorf("unmarshaling user profile: %w", err)
	}
	return &user, token, nil
}

// Clear removes both keys. A no-op when nothing is stored.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning clear: %w", err)
	}
	defer tx.Rollback()

	const del = `DELETE FROM credentials WHERE key = ?`
	if _, err := tx.ExecContext(ctx, del, keyUser); err != nil {
		return fmt.Errorf("clearing user profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, del, keyToken); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}

	s.log.Debug("cleared persisted credentials")
	return nil
}

func (s *SQLiteStore) value(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", key, err)
	}
	return v, nil
}
