package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

func testUser() *domain.User {
	return &domain.User{
		ID:      7,
		Name:    "Maria",
		Email:   "maria@example.com",
		Avatar:  "maria.png",
		IsAdmin: false,
	}
}

// runStoreTests exercises the CredentialStore contract against any
// implementation.
func runStoreTests(t *testing.T, store domain.CredentialStore) {
	t.Helper()
	ctx := context.Background()

	// Empty store hydrates as guest.
	if _, _, err := store.Load(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	// Save then load round-trips both values.
	if err := store.Save(ctx, testUser(), "token-123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	user, token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if user.Email != "maria@example.com" || user.ID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token != "token-123" {
		t.Fatalf("expected token-123, got %q", token)
	}

	// Overwrite wins.
	updated := testUser()
	updated.Name = "Maria Silva"
	if err := store.Save(ctx, updated, "token-456"); err != nil {
		t.Fatalf("second save: %v", err)
	}
	user, token, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load after overwrite: %v", err)
	}
	if user.Name != "Maria Silva" || token != "token-456" {
		t.Fatalf("overwrite not applied: %s / %s", user.Name, token)
	}

	// Clear removes both, and is idempotent.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, _, err := store.Load(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	runStoreTests(t, NewMemoryStore(log))
}

func TestSQLiteStore(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "creds.db"), log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	runStoreTests(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "creds.db")
	ctx := context.Background()

	store, err := OpenSQLite(path, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Save(ctx, testUser(), "persisted"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Simulate a process restart.
	reopened, err := OpenSQLite(path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	user, token, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if user.Email != "maria@example.com" || token != "persisted" {
		t.Fatalf("credentials did not survive reopen: %+v / %q", user, token)
	}
}

func TestSQLiteStorePartialRowIsGuest(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "creds.db"), log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	// A half-written store (only one of the two keys) must hydrate as
	// guest, not as a broken session.
	for _, key := range []string{keyUser, keyToken} {
		if _, err := store.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`,
			key, `{"id":1}`,
		); err != nil {
			t.Fatalf("seeding %s: %v", key, err)
		}

		if _, _, err := store.Load(ctx); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("only %s present: expected ErrNotFound, got %v", key, err)
		}

		if err := store.Clear(ctx); err != nil {
			t.Fatalf("clear: %v", err)
		}
	}
}
