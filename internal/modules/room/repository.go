package room

import "context"

// Repository defines room data storage.
type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	// UpdateIdentity renumbers or moves a room, preserving its stock map.
	UpdateIdentity(ctx context.Context, id, newID string, building int) error
	Delete(ctx context.Context, id string) error
	// DeleteBuilding removes every room in the building and reports how many.
	DeleteBuilding(ctx context.Context, building int) (int64, error)
	// StandardStocks returns product id → standard stock for seeding new rooms.
	StandardStocks(ctx context.Context) (map[string]int, error)
}
