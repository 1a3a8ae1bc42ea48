package checkout

import "errors"

var (
	// ErrStockUnderflow means a consumed quantity exceeds the room's on-hand
	// stock. The operation is aborted; nothing is clamped or persisted.
	ErrStockUnderflow = errors.New("stock underflow")

	// ErrNotFound means the consumption referenced a room or product that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReconciliationFailure means the receipt write and the stock write
	// could not be committed together. Neither is visible after it.
	ErrReconciliationFailure = errors.New("reconciliation failure")

	// ErrInvalidConsumption means the consumption map is malformed (e.g. a
	// negative quantity). Rejected before any state is touched.
	ErrInvalidConsumption = errors.New("invalid consumption")
)
