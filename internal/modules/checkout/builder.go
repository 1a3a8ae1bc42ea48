package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotelops/minibar-backend/internal/modules/catalog"
	"github.com/hotelops/minibar-backend/internal/modules/room"
)

// BuildReceipt computes a receipt candidate from the room's current stock,
// the live catalog, and the staff-entered consumption map (product id →
// quantity). Line ordering follows the products slice, which is the catalog
// order. The total bill is the running sum of line totals; there is no
// independent computation path.
//
// The caller must already have verified that every consumed quantity is
// covered by on-hand stock; BuildReceipt does not re-validate.
func BuildReceipt(rm *room.Room, products []*catalog.Product, consumed map[string]int) *Receipt {
	receipt := &Receipt{
		ID:        uuid.New(),
		RoomID:    rm.ID,
		Building:  rm.Building,
		CreatedAt: time.Now().UTC(),
		TotalBill: decimal.Zero,
	}

	post := make(map[string]int, len(products))
	for _, p := range products {
		productID := p.ID.String()
		qty := consumed[productID]

		if qty > 0 {
			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
			receipt.ConsumedItems = append(receipt.ConsumedItems, ConsumedItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				Quantity:     qty,
				PricePerUnit: p.Price,
				LineTotal:    lineTotal,
			})
			receipt.TotalBill = receipt.TotalBill.Add(lineTotal)
		}

		post[productID] = rm.MinibarStock[productID] - qty
	}

	receipt.ReplenishmentItems = Replenishments(post, products)
	return receipt
}

// Replenishments lists what housekeeping must add to bring the stock map back
// to standard levels. Fires whenever stock sits below standard, whether the
// current pass caused the deficit or it predated it. Ordering follows the
// products slice.
func Replenishments(stock map[string]int, products []*catalog.Product) []ReplenishmentItem {
	var items []ReplenishmentItem
	for _, p := range products {
		if needed := p.StandardStock - stock[p.ID.String()]; needed > 0 {
			items = append(items, ReplenishmentItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    needed,
			})
		}
	}
	return items
}
