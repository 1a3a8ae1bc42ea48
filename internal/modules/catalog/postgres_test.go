package catalog

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_SeedsProductIntoEveryRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	p := &Product{
		ID:            uuid.New(),
		Name:          "Water",
		Price:         decimal.RequireFromString("2.50"),
		StandardStock: 4,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products`)).
		WithArgs(p.ID, "Water", p.Price, 4, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`jsonb_set(minibar_stock, ARRAY[$1::text], to_jsonb($2::int), true)`)).
		WithArgs(p.ID.String(), 4).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_PrunesProductFromEveryRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id=$1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET minibar_stock = minibar_stock - $1::text`)).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id.String()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id=$1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = repo.Delete(context.Background(), id.String())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OrdersByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	cols := []string{"id", "name", "price", "standard_stock", "image_url", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM products ORDER BY name ASC`)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(uuid.New(), "Beer", "4.00", 2, nil, now, now).
			AddRow(uuid.New(), "Water", "2.50", 4, "uploads/w.png", now, now))

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Beer", products[0].Name)
	assert.Equal(t, "", products[0].ImageURL)
	assert.Equal(t, "uploads/w.png", products[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
