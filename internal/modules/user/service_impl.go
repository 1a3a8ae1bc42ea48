package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validPasskey(passkey string) bool {
	if len(passkey) != 4 {
		return false
	}
	for _, c := range passkey {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *service) RegisterUser(ctx context.Context, req UserRequest) (*User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !validPasskey(req.Passkey) {
		return nil, fmt.Errorf("passkey must be exactly 4 digits")
	}
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return nil, fmt.Errorf("invalid role_id: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Passkey), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:          uuid.New(),
		Username:    username,
		PasskeyHash: string(hashed),
		RoleID:      roleID,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) UpdateUser(ctx context.Context, id string, req UserRequest) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	user.Username = username

	if req.RoleID != "" {
		roleID, err := uuid.Parse(req.RoleID)
		if err != nil {
			return nil, fmt.Errorf("invalid role_id: %w", err)
		}
		user.RoleID = roleID
	}

	if req.Passkey != "" {
		if !validPasskey(req.Passkey) {
			return nil, fmt.Errorf("passkey must be exactly 4 digits")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Passkey), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasskeyHash = string(hashed)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}
