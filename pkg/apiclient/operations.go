package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// SessionPayload is the response body of a successful credential exchange.
type SessionPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ProfileUpdate is the request body for profile updates. The password trio is
// optional: zero-valued fields are omitted from the payload entirely.
type ProfileUpdate struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	OldPassword          string `json:"old_password,omitempty"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

type userEnvelope struct {
	User User `json:"user"`
}

// SignIn exchanges credentials for a session token and user record.
func (c *Client) SignIn(ctx context.Context, email, password string) (SessionPayload, error) {
	var out SessionPayload
	err := c.do(ctx, http.MethodPost, "sessions", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// ForgotPassword requests a password recovery email for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "password/forgot", map[string]string{
		"email": email,
	}, nil)
}

// ResetPassword confirms a password reset using the token from the recovery
// email.
func (c *Client) ResetPassword(ctx context.Context, token, password, passwordConfirmation string) error {
	return c.do(ctx, http.MethodPost, "password/reset", map[string]string{
		"token":                 token,
		"password":              password,
		"password_confirmation": passwordConfirmation,
	}, nil)
}

// UpdateProfile replaces the authenticated user's profile and returns the
// updated record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPut, "profile", update, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// UpdateAvatar uploads a new avatar image as a multipart form and returns the
// updated user record.
func (c *Client) UpdateAvatar(ctx context.Context, filename string, data io.Reader) (User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return User{}, fmt.Errorf("apiclient: build multipart body: %w", err)
	}
	if _, err := io.Copy(fw, data); err != nil {
		return User{}, fmt.Errorf("apiclient: read avatar data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return User{}, fmt.Errorf("apiclient: finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, "users/avatar", &buf)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out userEnvelope
	if err := c.send(req, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}
