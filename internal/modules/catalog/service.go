package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// SetImage updates the product's image reference and returns the previous
	// one so the caller can remove the orphaned file.
	SetImage(ctx context.Context, id, imageURL string) (previous string, err error)
	// ClearImage removes the image reference and returns it.
	ClearImage(ctx context.Context, id string) (removed string, err error)
}

// ProductRequest holds the data for creating or updating a product.
type ProductRequest struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StandardStock int             `json:"standard_stock"`
}

type service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new catalog service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log.Named("catalog")}
}

func (s *service) validate(req ProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if req.StandardStock < 0 {
		return fmt.Errorf("standard_stock must not be negative")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	p := &Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Price:         req.Price,
		StandardStock: req.StandardStock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.Int("standard_stock", p.StandardStock))
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Price = req.Price
	p.StandardStock = req.StandardStock
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (s *service) SetImage(ctx context.Context, id, imageURL string) (string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	previous := p.ImageURL
	p.ImageURL = imageURL
	if err := s.repo.Update(ctx, p); err != nil {
		return "", err
	}
	return previous, nil
}

func (s *service) ClearImage(ctx context.Context, id string) (string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if p.ImageURL == "" {
		return "", fmt.Errorf("product has no image")
	}
	removed := p.ImageURL
	p.ImageURL = ""
	if err := s.repo.Update(ctx, p); err != nil {
		return "", err
	}
	return removed, nil
}
