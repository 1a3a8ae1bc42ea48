package role

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines role business logic.
type Service interface {
	CreateRole(ctx context.Context, req RoleRequest) (*Role, error)
	GetRole(ctx context.Context, id string) (*Role, error)
	ListRoles(ctx context.Context) ([]*Role, error)
	UpdateRole(ctx context.Context, id string, req RoleRequest) (*Role, error)
	DeleteRole(ctx context.Context, id string) error
}

// RoleRequest holds the data for creating or updating a role. Permissions are
// view names and must all be known.
type RoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type service struct{ repo Repository }

// NewService creates a new role service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func parsePermissions(raw []string) ([]View, error) {
	views := make([]View, 0, len(raw))
	seen := map[View]bool{}
	for _, s := range raw {
		v, err := ParseView(s)
		if err != nil {
			return nil, err
		}
		if !seen[v] {
			seen[v] = true
			views = append(views, v)
		}
	}
	return views, nil
}

func (s *service) CreateRole(ctx context.Context, req RoleRequest) (*Role, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	perms, err := parsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}
	role := &Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Permissions: perms,
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *service) GetRole(ctx context.Context, id string) (*Role, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRoles(ctx context.Context) ([]*Role, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateRole(ctx context.Context, id string, req RoleRequest) (*Role, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	perms, err := parsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role.Name = req.Name
	role.Permissions = perms
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *service) DeleteRole(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
