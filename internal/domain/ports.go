package domain

import "context"

// CredentialStore persists the signed-in user and bearer token across
// process restarts. Save writes both values together; Clear removes
// both together. Load returns ErrNotFound when either value is missing,
// so a half-written store always hydrates as guest.
type CredentialStore interface {
	Save(ctx context.Context, user *User, token string) error
	Load(ctx context.Context) (*User, string, error)
	Clear(ctx context.Context) error
}

// TokenSource supplies the bearer credential attached to outgoing API
// requests. An empty string means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// AuthAPI is the remote session and profile surface.
type AuthAPI interface {
	SignIn(ctx context.Context, creds Credentials) (*User, string, error)
	UpdateAvatar(ctx context.Context, avatar *FileUpload) (string, error)
	UpdateUser(ctx context.Context, user *User) error
}

// DishAPI is the remote catalog surface.
type DishAPI interface {
	CreateDish(ctx context.Context, dish *NewDish) error
	GetDish(ctx context.Context, id int) (*Dish, error)
	ImageURL(name string) string
}

// Notifier delivers user-facing messages. Implementations can write to
// stdout, the terminal UI, or be recorded in tests.
type Notifier interface {
	Success(ctx context.Context, message string)
	Warn(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// Cart is the pending-order collaborator. The detail panel hands it a
// dish with the chosen quantity and the resolved image URL; what the
// cart does with them is its own business.
type Cart interface {
	Add(ctx context.Context, dish *Dish, quantity int, imageURL string) error
}
