package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedProduct struct {
	name          string
	price         string
	standardStock int
}

var seedProducts = []seedProduct{
	{"Water", "2.50", 4},
	{"Soda", "3.00", 4},
	{"Beer", "4.50", 4},
	{"Wine", "8.00", 2},
	{"Chips", "2.00", 4},
	{"Chocolate", "3.50", 4},
	{"Nuts", "4.00", 3},
	{"Coffee", "3.00", 4},
}

var seedRooms = []struct {
	id       string
	building int
}{
	{"101", 1}, {"102", 1}, {"103", 1},
	{"201", 2}, {"202", 2}, {"203", 2},
}

var seedRoles = []struct {
	name        string
	permissions []string
}{
	{"Admin", []string{"admin", "management", "front_desk", "rooms"}},
	{"Management", []string{"management", "front_desk", "rooms"}},
	{"Front Desk", []string{"front_desk", "rooms"}},
}

var seedUsers = []struct {
	username string
	passkey  string
	role     string
}{
	{"admin", "1234", "Admin"},
	{"manager", "1234", "Management"},
	{"frontdesk", "1234", "Front Desk"},
}

// Seed populates an empty database with the starter catalog, rooms, roles,
// and users. It is a no-op if any product already exists.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	stock := map[string]int{}
	for _, p := range seedProducts {
		id := uuid.New()
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, price, standard_stock)
			VALUES ($1,$2,$3,$4)`,
			id, p.name, price, p.standardStock)
		if err != nil {
			return false, fmt.Errorf("seed product %s: %w", p.name, err)
		}
		stock[id.String()] = p.standardStock
	}

	encodedStock, err := json.Marshal(stock)
	if err != nil {
		return false, err
	}
	for _, r := range seedRooms {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rooms (id, building, minibar_stock)
			VALUES ($1,$2,$3)`,
			r.id, r.building, encodedStock)
		if err != nil {
			return false, fmt.Errorf("seed room %s: %w", r.id, err)
		}
	}

	roleIDs := map[string]uuid.UUID{}
	for _, r := range seedRoles {
		id := uuid.New()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO roles (id, name, permissions)
			VALUES ($1,$2,$3)`,
			id, r.name, pq.Array(r.permissions))
		if err != nil {
			return false, fmt.Errorf("seed role %s: %w", r.name, err)
		}
		roleIDs[r.name] = id
	}

	for _, u := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.passkey), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (id, username, passkey_hash, role_id)
			VALUES ($1,$2,$3,$4)`,
			uuid.New(), u.username, string(hashed), roleIDs[u.role])
		if err != nil {
			return false, fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
