package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
	"foodexplorer/internal/storage"
)

// fakeAuthAPI implements domain.AuthAPI with injectable behavior.
type fakeAuthAPI struct {
	signInFn       func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error)
	updateAvatarFn func(ctx context.Context, avatar *domain.FileUpload) (string, error)
	updateUserFn   func(ctx context.Context, user *domain.User) error

	signInCalls int
	avatarCalls int
	userCalls   int
}

func (f *fakeAuthAPI) SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
	f.signInCalls++
	return f.signInFn(ctx, creds)
}

func (f *fakeAuthAPI) UpdateAvatar(ctx context.Context, avatar *domain.FileUpload) (string, error) {
	f.avatarCalls++
	return f.updateAvatarFn(ctx, avatar)
}

func (f *fakeAuthAPI) UpdateUser(ctx context.Context, user *domain.User) error {
	f.userCalls++
	return f.updateUserFn(ctx, user)
}

// recordingNotifier captures user-facing messages.
type recordingNotifier struct {
	successes []string
	warnings  []string
	failures  []string
}

func (n *recordingNotifier) Success(_ context.Context, m string) { n.successes = append(n.successes, m) }
func (n *recordingNotifier) Warn(_ context.Context, m string)    { n.warnings = append(n.warnings, m) }
func (n *recordingNotifier) Error(_ context.Context, m string)   { n.failures = append(n.failures, m) }

func testUser() *domain.User {
	return &domain.User{ID: 1, Name: "Ana", Email: "ana@example.com", IsAdmin: true}
}

func setupStore(t *testing.T, api *fakeAuthAPI) (*Store, *storage.MemoryStore, *recordingNotifier) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	creds := storage.NewMemoryStore(log)
	notifier := &recordingNotifier{}
	return New(api, creds, notifier, log), creds, notifier
}

func TestSignInSuccess(t *testing.T) {
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return testUser(), "tok-1", nil
		},
	}
	store, creds, notifier := setupStore(t, api)
	ctx := context.Background()

	require.NoError(t, store.SignIn(ctx, domain.Credentials{Email: "ana@example.com", Password: "pw"}))

	// Session published.
	require.True(t, store.SignedIn())
	assert.Equal(t, "ana@example.com", store.User().Email)
	assert.Equal(t, "tok-1", store.Token())
	assert.False(t, store.Loading(), "loading must be cleared after sign-in")

	// Both keys persisted.
	user, token, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "tok-1", token)

	assert.Empty(t, notifier.failures)
}

func TestSignInLoadingDuringCall(t *testing.T) {
	var store *Store
	api := &fakeAuthAPI{}
	api.signInFn = func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
		assert.True(t, store.Loading(), "loading must be set before the network call")
		return testUser(), "tok", nil
	}
	store, _, _ = setupStore(t, api)

	require.NoError(t, store.SignIn(context.Background(), domain.Credentials{}))
	assert.False(t, store.Loading())
}

func TestSignInRemoteRejected(t *testing.T) {
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return nil, "", &domain.RemoteError{Status: 401, Message: "Wrong email or password."}
		},
	}
	store, creds, notifier := setupStore(t, api)
	ctx := context.Background()

	err := store.SignIn(ctx, domain.Credentials{Email: "ana@example.com", Password: "nope"})
	require.Error(t, err)

	// Session unchanged, nothing persisted, server message forwarded
	// verbatim, exactly once.
	assert.False(t, store.SignedIn())
	_, _, loadErr := creds.Load(ctx)
	assert.ErrorIs(t, loadErr, domain.ErrNotFound)
	require.Len(t, notifier.failures, 1)
	assert.Equal(t, "Wrong email or password.", notifier.failures[0])
	assert.False(t, store.Loading())
}

func TestSignInTransportFailure(t *testing.T) {
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return nil, "", errors.New("dial tcp: connection refused")
		},
	}
	store, _, notifier := setupStore(t, api)

	err := store.SignIn(context.Background(), domain.Credentials{})
	require.Error(t, err)

	require.Len(t, notifier.failures, 1)
	assert.Equal(t, "Could not sign in.", notifier.failures[0])
	assert.False(t, store.SignedIn())
}

func TestHydrate(t *testing.T) {
	api := &fakeAuthAPI{}
	store, creds, _ := setupStore(t, api)
	ctx := context.Background()

	// Nothing persisted: guest.
	store.Hydrate(ctx)
	assert.False(t, store.SignedIn())

	// Both values persisted: session restored without a network call.
	require.NoError(t, creds.Save(ctx, testUser(), "restored-token"))
	store.Hydrate(ctx)
	require.True(t, store.SignedIn())
	assert.Equal(t, "Ana", store.User().Name)
	assert.Equal(t, "restored-token", store.Token())
	assert.Zero(t, api.signInCalls, "hydration must not hit the network")
}

func TestSignOutThenHydrateIsGuest(t *testing.T) {
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return testUser(), "tok", nil
		},
	}
	store, creds, _ := setupStore(t, api)
	ctx := context.Background()

	require.NoError(t, store.SignIn(ctx, domain.Credentials{}))
	store.SignOut(ctx)

	assert.False(t, store.SignedIn())
	assert.Empty(t, store.Token())

	// Simulate a restart: a fresh store over the same credentials.
	log := logger.New(logger.LevelOff, nil)
	restarted := New(api, creds, &recordingNotifier{}, log)
	restarted.Hydrate(ctx)
	assert.False(t, restarted.SignedIn())

	// Signing out again is a no-op.
	store.SignOut(ctx)
	assert.False(t, store.SignedIn())
}

func TestUpdateProfileWithoutAvatar(t *testing.T) {
	var store *Store
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return testUser(), "keep-this-token", nil
		},
	}
	api.updateUserFn = func(ctx context.Context, user *domain.User) error {
		assert.False(t, store.Loading(), "profile update without avatar must not toggle loading")
		return nil
	}
	store, creds, notifier := setupStore(t, api)
	ctx := context.Background()
	require.NoError(t, store.SignIn(ctx, domain.Credentials{}))

	updated := store.User()
	updated.Name = "Ana Clara"
	require.NoError(t, store.UpdateProfile(ctx, updated, nil))

	// Exactly one request: PUT /users, no avatar upload.
	assert.Equal(t, 1, api.userCalls)
	assert.Zero(t, api.avatarCalls)

	// Published and persisted with the token preserved.
	assert.Equal(t, "Ana Clara", store.User().Name)
	assert.Equal(t, "keep-this-token", store.Token())
	user, token, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana Clara", user.Name)
	assert.Equal(t, "keep-this-token", token)

	require.Len(t, notifier.successes, 1)
	assert.Equal(t, "Profile updated!", notifier.successes[0])
}

func TestUpdateProfileWithAvatar(t *testing.T) {
	var store *Store
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return testUser(), "tok", nil
		},
	}
	api.updateAvatarFn = func(ctx context.Context, avatar *domain.FileUpload) (string, error) {
		assert.True(t, store.Loading(), "avatar upload must engage loading")
		assert.Equal(t, "new.png", avatar.Name)
		return "stored-new.png", nil
	}
	api.updateUserFn = func(ctx context.Context, user *domain.User) error {
		// The avatar reference is merged before the profile is sent.
		assert.Equal(t, "stored-new.png", user.Avatar)
		return nil
	}
	store, _, notifier := setupStore(t, api)
	ctx := context.Background()
	require.NoError(t, store.SignIn(ctx, domain.Credentials{}))

	avatar := &domain.FileUpload{Name: "new.png", Data: strings.NewReader("png-bytes")}
	require.NoError(t, store.UpdateProfile(ctx, store.User(), avatar))

	assert.Equal(t, 1, api.avatarCalls)
	assert.Equal(t, 1, api.userCalls)
	assert.Equal(t, "stored-new.png", store.User().Avatar)
	assert.Equal(t, "tok", store.Token())
	assert.False(t, store.Loading())
	require.Len(t, notifier.successes, 1)
}

func TestUpdateProfileAvatarUploadFails(t *testing.T) {
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return testUser(), "tok", nil
		},
		updateAvatarFn: func(ctx context.Context, avatar *domain.FileUpload) (string, error) {
			return "", &domain.RemoteError{Status: 413, Message: "File too large."}
		},
	}
	store, _, notifier := setupStore(t, api)
	ctx := context.Background()
	require.NoError(t, store.SignIn(ctx, domain.Credentials{}))

	avatar := &domain.FileUpload{Name: "huge.png", Data: strings.NewReader("...")}
	err := store.UpdateProfile(ctx, store.User(), avatar)
	require.Error(t, err)

	// The profile request is never issued, the published profile is
	// untouched, and the server message is shown verbatim.
	assert.Zero(t, api.userCalls)
	assert.Equal(t, "Ana", store.User().Name)
	require.Len(t, notifier.failures, 1)
	assert.Equal(t, "File too large.", notifier.failures[0])
	assert.False(t, store.Loading())
}

func TestUpdateProfileTransportFailure(t *testing.T) {
	api := &fakeAuthAPI{
		signInFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return testUser(), "tok", nil
		},
		updateUserFn: func(ctx context.Context, user *domain.User) error {
			return errors.New("connection reset")
		},
	}
	store, _, notifier := setupStore(t, api)
	ctx := context.Background()
	require.NoError(t, store.SignIn(ctx, domain.Credentials{}))

	err := store.UpdateProfile(ctx, store.User(), nil)
	require.Error(t, err)
	require.Len(t, notifier.failures, 1)
	assert.Equal(t, "Could not update the profile.", notifier.failures[0])
	assert.Empty(t, notifier.successes)
}
