package auth

import (
	"context"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type service struct {
	users  CredentialSource
	roles  PermissionSource
	secret []byte
}

// NewService creates a new auth service signing tokens with secret.
func NewService(users CredentialSource, roles PermissionSource, secret []byte) Service {
	return &service{users: users, roles: roles, secret: secret}
}

// Claims are the JWT claims issued at login. Permissions ride along so route
// guards need no database round trip.
type Claims struct {
	Username    string   `json:"username"`
	RoleID      string   `json:"role_id"`
	Permissions []string `json:"perms"`
	jwt.StandardClaims
}

func (s *service) Login(ctx context.Context, username, passkey string) (*LoginResult, error) {
	cred, err := s.users.CredentialByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasskeyHash), []byte(passkey)); err != nil {
		return nil, ErrInvalidCredentials
	}

	perms, err := s.roles.PermissionsForRole(ctx, cred.RoleID)
	if err != nil {
		return nil, err
	}

	claims := &Claims{
		Username:    cred.Username,
		RoleID:      cred.RoleID,
		Permissions: perms,
		StandardClaims: jwt.StandardClaims{
			Subject:   cred.UserID,
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:       signed,
		UserID:      cred.UserID,
		Username:    cred.Username,
		RoleID:      cred.RoleID,
		Permissions: perms,
	}, nil
}
