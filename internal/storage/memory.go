package storage

import (
	"context"
	"sync"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Compile-time interface check.
var _ domain.CredentialStore = (*MemoryStore)(nil)

// MemoryStore keeps credentials in memory only. Used by tests and by
// the -no-save mode where nothing should touch the disk. Safe for
// concurrent access.
type MemoryStore struct {
	mu    sync.RWMutex
	user  *domain.User
	token string
	set   bool
	log   *logger.Logger
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Save stores the user and token together.
func (s *MemoryStore) Save(ctx context.Context, user *domain.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.user = &copied
	s.token = token
	s.set = true
	s.log.Debug("stored credentials for %s (in memory)", user.Email)
	return nil
}

// Load returns the stored pair, or domain.ErrNotFound when empty.
func (s *MemoryStore) Load(ctx context.Context) (*domain.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return nil, "", domain.ErrNotFound
	}
	copied := *s.user
	return &copied, s.token, nil
}

// Clear forgets the stored pair. A no-op when already empty.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.set = false
	return nil
}
