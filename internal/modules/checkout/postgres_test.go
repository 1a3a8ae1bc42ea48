package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReceipt(t *testing.T) *Receipt {
	t.Helper()
	productID := uuid.New()
	return &Receipt{
		ID:        uuid.New(),
		RoomID:    "101",
		Building:  1,
		CreatedAt: time.Now().UTC(),
		ConsumedItems: []ConsumedItem{{
			ProductID:    productID,
			ProductName:  "Water",
			Quantity:     2,
			PricePerUnit: decimal.RequireFromString("2.50"),
			LineTotal:    decimal.RequireFromString("5.00"),
		}},
		ReplenishmentItems: []ReplenishmentItem{{
			ProductID:   productID,
			ProductName: "Water",
			Quantity:    2,
		}},
		TotalBill: decimal.RequireFromString("5.00"),
	}
}

func stockJSON(t *testing.T, stock map[string]int) []byte {
	t.Helper()
	raw, err := json.Marshal(stock)
	require.NoError(t, err)
	return raw
}

func TestSaveCheckout_CommitsReceiptAndStockTogether(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	receipt := testReceipt(t)
	productID := receipt.ConsumedItems[0].ProductID.String()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT minibar_stock FROM rooms WHERE id=$1 FOR UPDATE`)).
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"minibar_stock"}).
			AddRow(stockJSON(t, map[string]int{productID: 4})))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, standard_stock FROM products ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "standard_stock"}).
			AddRow(receipt.ConsumedItems[0].ProductID, "Water", 4))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipts`)).
		WithArgs(receipt.ID, "101", 1, receipt.CreatedAt, receipt.TotalBill).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipt_consumed_items`)).
		WithArgs(receipt.ID, 0, receipt.ConsumedItems[0].ProductID, "Water", 2,
			receipt.ConsumedItems[0].PricePerUnit, receipt.ConsumedItems[0].LineTotal).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipt_replenishment_items`)).
		WithArgs(receipt.ID, 0, receipt.ReplenishmentItems[0].ProductID, "Water", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET minibar_stock=$1, updated_at=NOW() WHERE id=$2`)).
		WithArgs(sqlmock.AnyArg(), "101").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.SaveCheckout(context.Background(), receipt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCheckout_ReplenishmentRecomputedFromLockedStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	// The receipt was built when the room held 4 units, so it carries a
	// replenishment line of 2. A concurrent checkout then committed stock 2;
	// this transaction drains it to 0, so the persisted replenishment must be
	// 4 to restore standard stock, not the stale 2.
	receipt := testReceipt(t)
	productID := receipt.ConsumedItems[0].ProductID

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT minibar_stock FROM rooms WHERE id=$1 FOR UPDATE`)).
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"minibar_stock"}).
			AddRow(stockJSON(t, map[string]int{productID.String(): 2})))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, standard_stock FROM products ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "standard_stock"}).
			AddRow(productID, "Water", 4))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipts`)).
		WithArgs(receipt.ID, "101", 1, receipt.CreatedAt, receipt.TotalBill).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipt_consumed_items`)).
		WithArgs(receipt.ID, 0, productID, "Water", 2,
			receipt.ConsumedItems[0].PricePerUnit, receipt.ConsumedItems[0].LineTotal).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipt_replenishment_items`)).
		WithArgs(receipt.ID, 0, productID, "Water", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET minibar_stock=$1, updated_at=NOW() WHERE id=$2`)).
		WithArgs(sqlmock.AnyArg(), "101").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveCheckout(context.Background(), receipt))
	require.Len(t, receipt.ReplenishmentItems, 1)
	assert.Equal(t, 4, receipt.ReplenishmentItems[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCheckout_RoomMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT minibar_stock FROM rooms WHERE id=$1 FOR UPDATE`)).
		WithArgs("101").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err = repo.SaveCheckout(context.Background(), testReceipt(t))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCheckout_UnderflowUnderLockRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	receipt := testReceipt(t)
	productID := receipt.ConsumedItems[0].ProductID.String()

	// A concurrent checkout drained the room between the caller's read and
	// this transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT minibar_stock FROM rooms WHERE id=$1 FOR UPDATE`)).
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"minibar_stock"}).
			AddRow(stockJSON(t, map[string]int{productID: 1})))
	mock.ExpectRollback()

	err = repo.SaveCheckout(context.Background(), receipt)
	assert.ErrorIs(t, err, ErrStockUnderflow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCheckout_ReceiptInsertFailureLeavesNothingVisible(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	receipt := testReceipt(t)
	productID := receipt.ConsumedItems[0].ProductID.String()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT minibar_stock FROM rooms WHERE id=$1 FOR UPDATE`)).
		WithArgs("101").
		WillReturnRows(sqlmock.NewRows([]string{"minibar_stock"}).
			AddRow(stockJSON(t, map[string]int{productID: 4})))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, standard_stock FROM products ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "standard_stock"}).
			AddRow(receipt.ConsumedItems[0].ProductID, "Water", 4))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO receipts`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = repo.SaveCheckout(context.Background(), receipt)
	assert.ErrorIs(t, err, ErrReconciliationFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReceipts_NewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	newer := uuid.New()
	older := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM receipts ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "room_id", "building", "created_at", "total_bill"}).
			AddRow(newer, "101", 1, now, "5.00").
			AddRow(older, "202", 2, now.Add(-time.Hour), "3.00"))
	for _, id := range []uuid.UUID{newer, older} {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM receipt_consumed_items`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(
				[]string{"product_id", "product_name", "quantity", "price_per_unit", "line_total"}))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM receipt_replenishment_items`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "product_name", "quantity"}))
	}

	receipts, err := repo.ListReceipts(context.Background())
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, newer, receipts[0].ID)
	assert.Equal(t, older, receipts[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
