package user

import (
	"context"

	"github.com/hotelops/minibar-backend/internal/modules/auth"
)

// Repository defines user data storage. It doubles as the auth module's
// credential source.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id string) error
	CredentialByUsername(ctx context.Context, username string) (*auth.Credential, error)
}
