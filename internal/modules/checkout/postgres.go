package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelops/minibar-backend/internal/modules/catalog"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// SaveCheckout runs the reconciliation transaction. SELECT ... FOR UPDATE on
// the room row serializes concurrent checkouts of the same room; checkouts on
// different rooms take different locks and proceed in parallel.
func (r *postgresRepo) SaveCheckout(ctx context.Context, receipt *Receipt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrReconciliationFailure, err)
	}
	defer tx.Rollback()

	var rawStock []byte
	err = tx.QueryRowContext(ctx,
		`SELECT minibar_stock FROM rooms WHERE id=$1 FOR UPDATE`,
		receipt.RoomID).Scan(&rawStock)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: room %s", ErrNotFound, receipt.RoomID)
	}
	if err != nil {
		return fmt.Errorf("%w: lock room: %v", ErrReconciliationFailure, err)
	}

	var stock map[string]int
	if err := json.Unmarshal(rawStock, &stock); err != nil {
		return fmt.Errorf("%w: decode stock: %v", ErrReconciliationFailure, err)
	}

	// Re-verify under the lock: a checkout that committed between the
	// caller's read and this transaction must not push stock negative.
	newStock, err := ApplyConsumption(stock, receipt.ConsumedItems)
	if err != nil {
		return err
	}

	// The receipt was built from a stock read taken before the lock. The
	// replenishment list must reflect the stock this transaction actually
	// commits, so recompute it from the locked stock and the live catalog.
	products, err := catalogSnapshot(ctx, tx)
	if err != nil {
		return fmt.Errorf("%w: read catalog: %v", ErrReconciliationFailure, err)
	}
	receipt.ReplenishmentItems = Replenishments(newStock, products)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (id, room_id, building, created_at, total_bill)
		VALUES ($1,$2,$3,$4,$5)`,
		receipt.ID, receipt.RoomID, receipt.Building, receipt.CreatedAt, receipt.TotalBill)
	if err != nil {
		return fmt.Errorf("%w: insert receipt: %v", ErrReconciliationFailure, err)
	}

	for i, item := range receipt.ConsumedItems {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipt_consumed_items
			  (receipt_id, position, product_id, product_name, quantity, price_per_unit, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			receipt.ID, i, item.ProductID, item.ProductName,
			item.Quantity, item.PricePerUnit, item.LineTotal)
		if err != nil {
			return fmt.Errorf("%w: insert consumed item: %v", ErrReconciliationFailure, err)
		}
	}

	for i, item := range receipt.ReplenishmentItems {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipt_replenishment_items
			  (receipt_id, position, product_id, product_name, quantity)
			VALUES ($1,$2,$3,$4,$5)`,
			receipt.ID, i, item.ProductID, item.ProductName, item.Quantity)
		if err != nil {
			return fmt.Errorf("%w: insert replenishment item: %v", ErrReconciliationFailure, err)
		}
	}

	encoded, err := json.Marshal(newStock)
	if err != nil {
		return fmt.Errorf("%w: encode stock: %v", ErrReconciliationFailure, err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE rooms SET minibar_stock=$1, updated_at=NOW() WHERE id=$2`,
		encoded, receipt.RoomID)
	if err != nil {
		return fmt.Errorf("%w: update stock: %v", ErrReconciliationFailure, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrReconciliationFailure, err)
	}
	return nil
}

func catalogSnapshot(ctx context.Context, tx *sql.Tx) ([]*catalog.Product, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, name, standard_stock FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p := &catalog.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.StandardStock); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) GetReceiptByID(ctx context.Context, id string) (*Receipt, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: receipt %s", ErrNotFound, id)
	}
	receipt := &Receipt{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, room_id, building, created_at, total_bill
		FROM receipts WHERE id=$1`, uid).Scan(
		&receipt.ID, &receipt.RoomID, &receipt.Building, &receipt.CreatedAt, &receipt.TotalBill)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: receipt %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (r *postgresRepo) ListReceipts(ctx context.Context) ([]*Receipt, error) {
	return r.queryReceipts(ctx, `
		SELECT id, room_id, building, created_at, total_bill
		FROM receipts ORDER BY created_at DESC`)
}

func (r *postgresRepo) ListReceiptsByRoom(ctx context.Context, roomID string) ([]*Receipt, error) {
	return r.queryReceipts(ctx, `
		SELECT id, room_id, building, created_at, total_bill
		FROM receipts WHERE room_id=$1 ORDER BY created_at DESC`, roomID)
}

func (r *postgresRepo) queryReceipts(ctx context.Context, query string, args ...interface{}) ([]*Receipt, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*Receipt
	for rows.Next() {
		receipt := &Receipt{}
		if err := rows.Scan(&receipt.ID, &receipt.RoomID, &receipt.Building,
			&receipt.CreatedAt, &receipt.TotalBill); err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, receipt := range receipts {
		if err := r.loadItems(ctx, receipt); err != nil {
			return nil, err
		}
	}
	return receipts, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, receipt *Receipt) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, quantity, price_per_unit, line_total
		FROM receipt_consumed_items WHERE receipt_id=$1 ORDER BY position ASC`, receipt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		item := ConsumedItem{}
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity,
			&item.PricePerUnit, &item.LineTotal); err != nil {
			return err
		}
		receipt.ConsumedItems = append(receipt.ConsumedItems, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	repRows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, quantity
		FROM receipt_replenishment_items WHERE receipt_id=$1 ORDER BY position ASC`, receipt.ID)
	if err != nil {
		return err
	}
	defer repRows.Close()
	for repRows.Next() {
		item := ReplenishmentItem{}
		if err := repRows.Scan(&item.ProductID, &item.ProductName, &item.Quantity); err != nil {
			return err
		}
		receipt.ReplenishmentItems = append(receipt.ReplenishmentItems, item)
	}
	return repRows.Err()
}
