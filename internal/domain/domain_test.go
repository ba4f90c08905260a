package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestRemoteMessage(t *testing.T) {
	remote := &RemoteError{Status: 409, Message: "A dish with this name already exists."}

	msg, ok := RemoteMessage(remote)
	if !ok || msg != remote.Message {
		t.Errorf("RemoteMessage(remote) = %q, %v", msg, ok)
	}

	// Wrapped remote errors still surface their message.
	msg, ok = RemoteMessage(fmt.Errorf("creating dish: %w", remote))
	if !ok || msg != remote.Message {
		t.Errorf("RemoteMessage(wrapped) = %q, %v", msg, ok)
	}

	if _, ok := RemoteMessage(errors.New("connection refused")); ok {
		t.Error("RemoteMessage treated a transport failure as a server message")
	}
	if _, ok := RemoteMessage(nil); ok {
		t.Error("RemoteMessage(nil) reported a message")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"dishes", CategoryDishes},
		{"drinks", CategoryDrinks},
		{"dessert", CategoryDessert},
		{"", CategoryNone},
		{"Dishes", CategoryNone},
		{"soup", CategoryNone},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range []Category{CategoryDishes, CategoryDrinks, CategoryDessert} {
		if got := ParseCategory(c.String()); got != c {
			t.Errorf("ParseCategory(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if CategoryNone.String() != "" {
		t.Errorf("CategoryNone.String() = %q, want empty", CategoryNone.String())
	}
}
