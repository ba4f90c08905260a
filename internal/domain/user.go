// Package domain defines the core types and interfaces for the food
// ordering client. All other packages depend on domain; domain depends
// on nothing.
package domain

// User is the authenticated principal's profile.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar"`
	IsAdmin bool   `json:"isAdmin"`
}

// Credentials is a sign-in request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
