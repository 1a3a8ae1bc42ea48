package checkout

import "fmt"

// ApplyConsumption returns the room's stock map after subtracting the
// receipt's consumed quantities. Entries without consumption pass through
// unchanged; replenishment is never applied here, only reported on the
// receipt. A subtraction that would go negative aborts with
// ErrStockUnderflow rather than clamping.
func ApplyConsumption(stock map[string]int, items []ConsumedItem) (map[string]int, error) {
	newStock := make(map[string]int, len(stock))
	for productID, qty := range stock {
		newStock[productID] = qty
	}

	for _, item := range items {
		productID := item.ProductID.String()
		remaining := newStock[productID] - item.Quantity
		if remaining < 0 {
			return nil, fmt.Errorf("%w: product %s has %d on hand, %d consumed",
				ErrStockUnderflow, productID, newStock[productID], item.Quantity)
		}
		newStock[productID] = remaining
	}

	return newStock, nil
}
