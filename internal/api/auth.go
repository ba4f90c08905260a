package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"foodexplorer/internal/domain"
)

// sessionPayload is the response of POST /sessions.
type sessionPayload struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// avatarPayload is the response of PATCH /users/avatar.
type avatarPayload struct {
	Avatar string `json:"avatar"`
}

// SignIn exchanges credentials for the user profile and a bearer token.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
	var payload sessionPayload
	if err := c.sendJSON(ctx, http.MethodPost, "/sessions", creds, &payload); err != nil {
		return nil, "", err
	}
	if payload.User == nil || payload.Token == "" {
		return nil, "", fmt.Errorf("api: session response missing user or token")
	}
	c.log.Info("signed in as %s", payload.User.Email)
	return payload.User, payload.Token, nil
}

// UpdateAvatar uploads a new avatar image and returns the stored
// file name to merge into the profile.
func (c *Client) UpdateAvatar(ctx context.Context, avatar *domain.FileUpload) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("avatar", avatar.Name)
	if err != nil {
		return "", fmt.Errorf("api: build avatar form: %w", err)
	}
	if _, err := io.Copy(part, avatar.Data); err != nil {
		return "", fmt.Errorf("api: read avatar file: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("api: close avatar form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "/users/avatar", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var payload avatarPayload
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	return payload.Avatar, nil
}

// UpdateUser sends the full updated profile to the API.
func (c *Client) UpdateUser(ctx context.Context, user *domain.User) error {
	return c.sendJSON(ctx, http.MethodPut, "/users", user, nil)
}
