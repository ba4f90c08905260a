package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing record: no persisted credentials, or an
// operation against a dish that never loaded.
var ErrNotFound = errors.New("not found")

// RemoteError is a structured rejection from the remote API: the server
// was reached and replied with an error payload. Its message is shown
// to the user verbatim.
type RemoteError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %d: %s", e.Status, e.Message)
}

// RemoteMessage extracts the server-provided message from err. The
// second return is false when err is a transport failure (no structured
// response reached the caller) and the caller should fall back to a
// fixed message instead.
func RemoteMessage(err error) (string, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message, true
	}
	return "", false
}

// ValidationError is a purely local form-validation failure. It is
// never sent to the server.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
