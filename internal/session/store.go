// Package session owns the authenticated session: the signed-in user,
// the bearer token, and the operations that mutate them. All other
// components read the session through the Store and never touch its
// fields directly. The Store doubles as the token source for the API
// client, so authorization follows sign-in/sign-out automatically.
package session

import (
	"context"
	"errors"
	"sync"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Compile-time interface check.
var _ domain.TokenSource = (*Store)(nil)

// Fallback messages shown when a request fails without a structured
// server response.
const (
	msgSignInFailed  = "Could not sign in."
	msgProfileFailed = "Could not update the profile."
	msgProfileSaved  = "Profile updated!"
)

// Store holds the current session. Safe for concurrent reads; the
// session-mutating operations are serialized by the caller via the
// advisory Loading flag (the Store does not reject concurrent calls).
type Store struct {
	mu      sync.RWMutex
	user    *domain.User
	token   string
	loading bool

	api      domain.AuthAPI
	creds    domain.CredentialStore
	notifier domain.Notifier
	log      *logger.Logger
}

// New creates an empty (guest) session store.
func New(api domain.AuthAPI, creds domain.CredentialStore, notifier domain.Notifier, log *logger.Logger) *Store {
	return &Store{
		api:      api,
		creds:    creds,
		notifier: notifier,
		log:      log,
	}
}

// User returns a copy of the signed-in profile, or nil for guests.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// Token returns the current bearer credential, empty for guests.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SignedIn reports whether a session is established.
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Loading reports whether a session-mutating request is in flight.
// Callers check it before invoking SignIn or an avatar-bearing
// UpdateProfile so a double submission never starts.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) publish(user *domain.User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
}

// Hydrate restores the session from durable storage. Called once at
// process start, before any dependent component mounts; it makes no
// network call. A missing or unreadable store leaves the session as
// guest.
func (s *Store) Hydrate(ctx context.Context) {
	user, token, err := s.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("hydration failed, starting as guest: %v", err)
		}
		return
	}
	s.publish(user, token)
	s.log.Info("session restored for %s", user.Email)
}

// SignIn exchanges credentials for a session, persists it, and
// publishes it. The loading flag is set before the network call and
// cleared exactly once on exit. On failure the session is left
// unchanged and exactly one error message is surfaced.
func (s *Store) SignIn(ctx context.Context, creds domain.Credentials) error {
	s.setLoading(true)
	defer s.setLoading(false)

	user, token, err := s.api.SignIn(ctx, creds)
	if err != nil {
		s.fail(ctx, err, msgSignInFailed)
		return err
	}

	if err := s.creds.Save(ctx, user, token); err != nil {
		// Fail closed: a session we cannot persist is not published,
		// so memory and disk never diverge.
		s.fail(ctx, err, msgSignInFailed)
		return err
	}

	s.publish(user, token)
	return nil
}

// SignOut clears the persisted credentials and resets the session to
// guest. No network call; idempotent.
func (s *Store) SignOut(ctx context.Context) {
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error("clearing persisted credentials: %v", err)
	}
	s.publish(nil, "")
	s.log.Info("signed out")
}

// UpdateProfile updates the signed-in user. When avatar is non-nil it
// is uploaded first and the returned reference merged into the profile;
// only then does the loading flag toggle. The token is preserved
// unchanged.
func (s *Store) UpdateProfile(ctx context.Context, user *domain.User, avatar *domain.FileUpload) error {
	updated := *user

	if avatar != nil {
		s.setLoading(true)
		defer s.setLoading(false)

		name, err := s.api.UpdateAvatar(ctx, avatar)
		if err != nil {
			s.fail(ctx, err, msgProfileFailed)
			return err
		}
		updated.Avatar = name
	}

	if err := s.api.UpdateUser(ctx, &updated); err != nil {
		s.fail(ctx, err, msgProfileFailed)
		return err
	}

	token := s.Token()
	if err := s.creds.Save(ctx, &updated, token); err != nil {
		s.fail(ctx, err, msgProfileFailed)
		return err
	}

	s.publish(&updated, token)
	s.notifier.Success(ctx, msgProfileSaved)
	return nil
}

// fail surfaces exactly one user-facing message for a failed request:
// the server's own message when it sent one, the fixed fallback
// otherwise.
func (s *Store) fail(ctx context.Context, err error, fallback string) {
	s.log.Error("session: %v", err)
	if msg, ok := domain.RemoteMessage(err); ok {
		s.notifier.Error(ctx, msg)
		return
	}
	s.notifier.Error(ctx, fallback)
}
