package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, req UserRequest) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, id string, req UserRequest) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserRequest holds the data for creating or updating a user. On update an
// empty passkey keeps the current one.
type UserRequest struct {
	Username string `json:"username"`
	Passkey  string `json:"passkey"`
	RoleID   string `json:"role_id"`
}
