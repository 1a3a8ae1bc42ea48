package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumedItem is one billed line on a receipt. ProductName and PricePerUnit
// are snapshots of the catalog at checkout time.
type ConsumedItem struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// ReplenishmentItem is what housekeeping must add to bring a product back to
// its standard stock. Reported only; never applied to stock by the system.
type ReplenishmentItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}

// Receipt is the immutable outcome of one consumption pass on a room. Both
// item lists follow catalog order.
type Receipt struct {
	ID                 uuid.UUID           `json:"id"`
	RoomID             string              `json:"room_id"`
	Building           int                 `json:"building"`
	CreatedAt          time.Time           `json:"created_at"`
	ConsumedItems      []ConsumedItem      `json:"consumed_items"`
	ReplenishmentItems []ReplenishmentItem `json:"replenishment_items"`
	TotalBill          decimal.Decimal     `json:"total_bill"`
}

// Empty reports whether the receipt bills nothing and requests no
// replenishment.
func (r *Receipt) Empty() bool {
	return len(r.ConsumedItems) == 0 && len(r.ReplenishmentItems) == 0
}
