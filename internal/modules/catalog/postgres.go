package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the product and seeds it into every room's stock map at its
// standard stock, inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, price, standard_stock, image_url)
		VALUES ($1,$2,$3,$4,NULLIF($5,''))`,
		p.ID, p.Name, p.Price, p.StandardStock, p.ImageURL)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE rooms
		SET minibar_stock = jsonb_set(minibar_stock, ARRAY[$1::text], to_jsonb($2::int), true),
		    updated_at = NOW()`,
		p.ID.String(), p.StandardStock)
	if err != nil {
		return fmt.Errorf("seed product into rooms: %w", err)
	}

	return tx.Commit()
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var imageURL sql.NullString
	err := scan(&p.ID, &p.Name, &p.Price, &p.StandardStock, &imageURL,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ImageURL = imageURL.String
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, standard_stock, image_url, created_at, updated_at
		FROM products WHERE id=$1`, uid)
	return scanProduct(row.Scan)
}

// List returns the catalog in its canonical order (name ascending). Receipt
// line ordering follows this.
func (r *postgresRepo) List(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, standard_stock, image_url, created_at, updated_at
		FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, price=$2, standard_stock=$3, image_url=NULLIF($4,''), updated_at=NOW()
		WHERE id=$5`,
		p.Name, p.Price, p.StandardStock, p.ImageURL, p.ID)
	return err
}

// Delete removes the product and prunes its entry from every room's stock
// map. Existing receipts keep their name/price snapshots untouched.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, uid)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE rooms SET minibar_stock = minibar_stock - $1::text, updated_at = NOW()`,
		uid.String())
	if err != nil {
		return fmt.Errorf("prune product from rooms: %w", err)
	}

	return tx.Commit()
}
