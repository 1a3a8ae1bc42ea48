package checkout

import "context"

// Repository defines receipt storage and the transactional checkout write.
type Repository interface {
	// SaveCheckout persists the receipt and the reconciled room stock as one
	// atomic unit. It locks the room row, re-verifies the consumed quantities
	// against the stock it sees under the lock, and commits the receipt
	// insert and stock update together; on any failure neither is visible.
	SaveCheckout(ctx context.Context, receipt *Receipt) error

	GetReceiptByID(ctx context.Context, id string) (*Receipt, error)
	// ListReceipts returns receipts newest first.
	ListReceipts(ctx context.Context) ([]*Receipt, error)
	ListReceiptsByRoom(ctx context.Context, roomID string) ([]*Receipt, error)
}
