package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account. Passkeys are stored as bcrypt hashes and never
// serialized.
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	PasskeyHash string    `json:"-"`
	RoleID      uuid.UUID `json:"role_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
