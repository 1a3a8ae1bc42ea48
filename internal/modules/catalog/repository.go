package catalog

import "context"

// Repository defines product data storage. Create and Delete also apply the
// room-stock cascades: a new product appears in every room at its standard
// stock, a deleted product is pruned from every room's stock map. Both run
// inside a single transaction with the product write.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
