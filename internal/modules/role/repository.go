package role

import (
	"context"
	"errors"
)

// ErrRoleAssigned is returned when deleting a role that users still hold.
var ErrRoleAssigned = errors.New("role is assigned to one or more users")

// Repository defines role data storage.
type Repository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id string) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
	Update(ctx context.Context, role *Role) error
	// Delete fails with ErrRoleAssigned while any user holds the role.
	Delete(ctx context.Context, id string) error
	// PermissionsForRole returns the role's view names for token claims.
	PermissionsForRole(ctx context.Context, roleID string) ([]string, error)
}
