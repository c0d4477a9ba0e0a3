package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username VARCHAR(150) NOT NULL DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		role TEXT NOT NULL DEFAULT 'customer' CHECK (role IN ('customer', 'manager', 'delivery_crew')),
		address TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		title VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id SERIAL PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		price NUMERIC(6, 2) NOT NULL CHECK (price > 0),
		category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS menu_items_category_id_idx ON menu_items (category_id)`,
	`CREATE TABLE IF NOT EXISTS cart_entries (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		menuitem_id INTEGER NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		UNIQUE (user_id, menuitem_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		total NUMERIC(8, 2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		delivery_crew_id INTEGER REFERENCES users(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id)`,
	`CREATE INDEX IF NOT EXISTS orders_delivery_crew_id_idx ON orders (delivery_crew_id)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		menuitem_id INTEGER NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(6, 2) NOT NULL,
		price NUMERIC(8, 2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_id_idx ON order_items (order_id)`,
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
