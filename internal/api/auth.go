package api

import (
	"context"

	"github.com/nhle/compliance-tracker/internal/model"
)

// Registration carries the fields for a new account. The backend owns
// the authoritative uniqueness and password-strength checks.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthResult is the credential/user pair returned by login and register.
type AuthResult struct {
	Token string
	User  model.User
}

// authEnvelope is the backend's auth response wrapper.
type authEnvelope struct {
	Success bool       `json:"success"`
	User    model.User `json:"user"`
	Token   string     `json:"token"`
	Message string     `json:"message"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var env authEnvelope
	if err := c.Post(ctx, "/api/auth/login/", body, &env); err != nil {
		return nil, err
	}
	return &AuthResult{Token: env.Token, User: env.User}, nil
}

// Register creates a new account and returns the same credential/user
// pair as Login.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var env authEnvelope
	if err := c.Post(ctx, "/api/auth/register/", reg, &env); err != nil {
		return nil, err
	}
	return &AuthResult{Token: env.Token, User: env.User}, nil
}

// Logout invalidates the credential server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/api/auth/logout/", nil, nil)
}

// CurrentUser fetches the profile bound to the current credential. It
// is used to validate a persisted token at startup.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var env authEnvelope
	if err := c.Get(ctx, "/api/auth/me/", &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}
