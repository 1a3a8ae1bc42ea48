package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hotelops/minibar-backend/internal/modules/catalog"
	"github.com/hotelops/minibar-backend/internal/modules/room"
)

// RoomSource is the slice of the room repository the checkout needs.
type RoomSource interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

// ProductSource is the slice of the catalog repository the checkout needs.
type ProductSource interface {
	List(ctx context.Context) ([]*catalog.Product, error)
}

// Service runs the consumption pass: build the receipt, reconcile stock,
// persist both atomically.
type Service interface {
	// Checkout turns the staff-entered consumption map into a persisted
	// receipt and the matching stock decrement. An empty result (nothing
	// consumed, nothing to replenish) is returned but not persisted.
	Checkout(ctx context.Context, roomID string, consumed map[string]int) (*Receipt, error)

	GetReceipt(ctx context.Context, id string) (*Receipt, error)
	ListReceipts(ctx context.Context) ([]*Receipt, error)
	RoomReceipts(ctx context.Context, roomID string) ([]*Receipt, error)
}

type service struct {
	repo     Repository
	rooms    RoomSource
	products ProductSource
	log      *zap.Logger
}

// NewService creates a new checkout service.
func NewService(repo Repository, rooms RoomSource, products ProductSource, log *zap.Logger) Service {
	return &service{repo: repo, rooms: rooms, products: products, log: log.Named("checkout")}
}

func (s *service) Checkout(ctx context.Context, roomID string, consumed map[string]int) (*Receipt, error) {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomID)
	}
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	// The edit point's contract: quantities are non-negative, reference live
	// products, and never exceed on-hand stock.
	known := make(map[string]bool, len(products))
	for _, p := range products {
		known[p.ID.String()] = true
	}
	for productID, qty := range consumed {
		if qty < 0 {
			return nil, fmt.Errorf("%w: negative quantity %d for product %s",
				ErrInvalidConsumption, qty, productID)
		}
		if qty == 0 {
			continue
		}
		if !known[productID] {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		if onHand := rm.MinibarStock[productID]; qty > onHand {
			return nil, fmt.Errorf("%w: product %s has %d on hand, %d requested",
				ErrStockUnderflow, productID, onHand, qty)
		}
	}

	receipt := BuildReceipt(rm, products, consumed)

	if receipt.Empty() {
		s.log.Debug("empty consumption pass, receipt not persisted",
			zap.String("room_id", roomID))
		return receipt, nil
	}

	if err := s.repo.SaveCheckout(ctx, receipt); err != nil {
		return nil, err
	}

	s.log.Info("checkout completed",
		zap.String("room_id", roomID),
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("total_bill", receipt.TotalBill.String()),
		zap.Int("consumed_lines", len(receipt.ConsumedItems)),
		zap.Int("replenishment_lines", len(receipt.ReplenishmentItems)))
	return receipt, nil
}

func (s *service) GetReceipt(ctx context.Context, id string) (*Receipt, error) {
	return s.repo.GetReceiptByID(ctx, id)
}

func (s *service) ListReceipts(ctx context.Context) ([]*Receipt, error) {
	return s.repo.ListReceipts(ctx)
}

func (s *service) RoomReceipts(ctx context.Context, roomID string) ([]*Receipt, error) {
	return s.repo.ListReceiptsByRoom(ctx, roomID)
}
