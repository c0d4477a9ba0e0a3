package storage

import (
	"context"
	"fmt"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"
)

// UpsertCartEntry writes the entry, replacing the quantity of an existing
// (user, menu item) line.
func (r *PostgresRepository) UpsertCartEntry(ctx context.Context, entry *domain.CartEntry) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO cart_entries (user_id, menuitem_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, menuitem_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`, entry.UserID, entry.MenuItemID, entry.Quantity)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: menu item %d", domain.ErrNotFound, entry.MenuItemID)
	}
	return err
}

func (r *PostgresRepository) ListCartEntries(ctx context.Context, userID int) ([]domain.CartEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.user_id, c.menuitem_id, c.quantity, m.price
		FROM cart_entries c
		JOIN menu_items m ON m.id = c.menuitem_id
		WHERE c.user_id = $1
		ORDER BY c.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.CartEntry{}
	for rows.Next() {
		var e domain.CartEntry
		if err := rows.Scan(&e.UserID, &e.MenuItemID, &e.Quantity, &e.UnitPrice); err != nil {
			return nil, err
		}
		e.Price = service.LineTotal(e.UnitPrice, e.Quantity)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
