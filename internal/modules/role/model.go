package role

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// View is one of the application's gated views. Permissions are a set of
// these, not free-form strings.
type View string

const (
	ViewRooms      View = "rooms"
	ViewFrontDesk  View = "front_desk"
	ViewManagement View = "management"
	ViewAdmin      View = "admin"
)

// AllViews lists every known view, in display order.
var AllViews = []View{ViewRooms, ViewFrontDesk, ViewManagement, ViewAdmin}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	for _, v := range AllViews {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Role names a set of view permissions assignable to users.
type Role struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Permissions []View    `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Allows reports whether the role grants access to the view.
func (r *Role) Allows(v View) bool {
	for _, p := range r.Permissions {
		if p == v {
			return true
		}
	}
	return false
}
