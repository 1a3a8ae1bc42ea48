package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelops/minibar-backend/internal/modules/auth"
)

type fakeRepo struct{ users map[string]*User }

func newFakeRepo() *fakeRepo { return &fakeRepo{users: map[string]*User{}} }

func (f *fakeRepo) CreateUser(_ context.Context, user *User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]*User, error) {
	var out []*User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, user *User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) CredentialByUsername(_ context.Context, username string) (*auth.Credential, error) {
	for _, user := range f.users {
		if user.Username == username {
			return &auth.Credential{
				UserID:      user.ID.String(),
				Username:    user.Username,
				PasskeyHash: user.PasskeyHash,
				RoleID:      user.RoleID.String(),
			}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestRegisterUser_LowercasesUsernameAndHashesPasskey(t *testing.T) {
	svc := NewService(newFakeRepo())

	user, err := svc.RegisterUser(context.Background(), UserRequest{
		Username: "  FrontDesk ",
		Passkey:  "1234",
		RoleID:   uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", user.Username)
	assert.NotEqual(t, "1234", user.PasskeyHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasskeyHash), []byte("1234")))
}

func TestRegisterUser_PasskeyMustBeFourDigits(t *testing.T) {
	svc := NewService(newFakeRepo())
	roleID := uuid.NewString()

	for _, passkey := range []string{"", "123", "12345", "12a4", "١٢٣٤"} {
		_, err := svc.RegisterUser(context.Background(), UserRequest{
			Username: "clerk",
			Passkey:  passkey,
			RoleID:   roleID,
		})
		assert.Error(t, err, "passkey %q should be rejected", passkey)
	}
}

func TestRegisterUser_InvalidRoleID(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.RegisterUser(context.Background(), UserRequest{
		Username: "clerk",
		Passkey:  "1234",
		RoleID:   "not-a-uuid",
	})
	assert.Error(t, err)
}

func TestUpdateUser_EmptyPasskeyKeepsCurrentHash(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	user, err := svc.RegisterUser(context.Background(), UserRequest{
		Username: "clerk",
		Passkey:  "1234",
		RoleID:   uuid.NewString(),
	})
	require.NoError(t, err)
	originalHash := user.PasskeyHash

	updated, err := svc.UpdateUser(context.Background(), user.ID.String(), UserRequest{
		Username: "Clerk2",
	})
	require.NoError(t, err)
	assert.Equal(t, "clerk2", updated.Username)
	assert.Equal(t, originalHash, updated.PasskeyHash)
}

func TestUpdateUser_NewPasskeyRehashed(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	user, err := svc.RegisterUser(context.Background(), UserRequest{
		Username: "clerk",
		Passkey:  "1234",
		RoleID:   uuid.NewString(),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(context.Background(), user.ID.String(), UserRequest{
		Username: "clerk",
		Passkey:  "5678",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasskeyHash), []byte("5678")))
}
