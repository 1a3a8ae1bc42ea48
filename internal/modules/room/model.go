package room

import (
	"fmt"
	"time"
)

// Room is a hotel room with its minibar stock. The room id is human-assigned
// (e.g. "101") and the stock map keys are product ids; a missing entry means
// zero on hand.
type Room struct {
	ID           string         `json:"id"`
	Building     int            `json:"building"`
	MinibarStock map[string]int `json:"minibar_stock"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ValidateStock rejects negative quantities. Applied at the persistence
// boundary whenever a stock map crosses it.
func ValidateStock(stock map[string]int) error {
	for productID, qty := range stock {
		if qty < 0 {
			return fmt.Errorf("negative stock %d for product %s", qty, productID)
		}
	}
	return nil
}
