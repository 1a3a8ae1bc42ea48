package auth

import (
	"context"
	"errors"
	"net/http"
)

// ErrInvalidCredentials covers unknown usernames and wrong passkeys alike.
var ErrInvalidCredentials = errors.New("invalid username or passkey")

// Credential is the slice of a user record the login flow needs.
type Credential struct {
	UserID      string
	Username    string
	PasskeyHash string
	RoleID      string
}

// CredentialSource looks up login credentials by username.
type CredentialSource interface {
	CredentialByUsername(ctx context.Context, username string) (*Credential, error)
}

// PermissionSource resolves a role id to its view permissions.
type PermissionSource interface {
	PermissionsForRole(ctx context.Context, roleID string) ([]string, error)
}

// Guard returns middleware that admits only tokens carrying the view
// permission.
type Guard func(view string) func(http.Handler) http.Handler

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token       string   `json:"token"`
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	RoleID      string   `json:"role_id"`
	Permissions []string `json:"permissions"`
}

// Service defines the interface for authentication business logic.
type Service interface {
	Login(ctx context.Context, username, passkey string) (*LoginResult, error)
}
