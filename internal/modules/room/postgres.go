package room

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, room *Room) error {
	if err := ValidateStock(room.MinibarStock); err != nil {
		return err
	}
	stock, err := json.Marshal(room.MinibarStock)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO rooms (id, building, minibar_stock)
		VALUES ($1, $2, $3)`,
		room.ID, room.Building, stock)
	return err
}

func scanRoom(scan func(...interface{}) error) (*Room, error) {
	room := &Room{}
	var stock []byte
	err := scan(&room.ID, &room.Building, &stock, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stock, &room.MinibarStock); err != nil {
		return nil, fmt.Errorf("decode stock for room %s: %w", room.ID, err)
	}
	if err := ValidateStock(room.MinibarStock); err != nil {
		return nil, fmt.Errorf("room %s: %w", room.ID, err)
	}
	return room, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Room, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, building, minibar_stock, created_at, updated_at
		FROM rooms WHERE id=$1`, id)
	return scanRoom(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context) ([]*Room, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, building, minibar_stock, created_at, updated_at
		FROM rooms ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		room, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *postgresRepo) UpdateIdentity(ctx context.Context, id, newID string, building int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rooms SET id=$1, building=$2, updated_at=NOW() WHERE id=$3`,
		newID, building, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepo) DeleteBuilding(ctx context.Context, building int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE building=$1`, building)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) StandardStocks(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, standard_stock FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stocks := map[string]int{}
	for rows.Next() {
		var id string
		var qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, err
		}
		stocks[id] = qty
	}
	return stocks, rows.Err()
}
