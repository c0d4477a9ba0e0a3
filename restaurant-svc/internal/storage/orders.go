package storage

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// cartLockNamespace is the first key of the two-key advisory lock taken per
// user during checkout.
const cartLockNamespace = 4201

const orderColumns = `id, user_id, total, created_at, delivery_crew_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	var crew sql.NullInt64
	if err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Date, &crew); err != nil {
		return o, err
	}
	if crew.Valid {
		id := int(crew.Int64)
		o.DeliveryCrewID = &id
	}
	o.Items = []domain.OrderItem{}
	return o, nil
}

// WithinTx runs fn in one transaction, committed only when fn succeeds.
func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(tx service.OrderTx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&checkoutTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type checkoutTx struct {
	tx *sql.Tx
}

// LockCart serializes checkouts of one user and locks the cart rows. A
// second checkout waits here and then sees the cart the first one left.
func (t *checkoutTx) LockCart(ctx context.Context, userID int) ([]domain.CartLine, error) {
	if _, err := t.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, cartLockNamespace, userID); err != nil {
		return nil, err
	}

	rows, err := t.tx.QueryContext(ctx, `
		SELECT c.menuitem_id, c.quantity, m.price
		FROM cart_entries c
		LEFT JOIN menu_items m ON m.id = c.menuitem_id
		WHERE c.user_id = $1
		ORDER BY c.id
		FOR UPDATE OF c
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		var price decimal.NullDecimal
		if err := rows.Scan(&line.MenuItemID, &line.Quantity, &price); err != nil {
			return nil, err
		}
		line.UnitPrice = price.Decimal
		line.Available = price.Valid
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (t *checkoutTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	return t.tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, order.UserID, order.Total, order.Date).Scan(&order.ID, &order.Date)
}

func (t *checkoutTx) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	return t.tx.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, menuitem_id, quantity, unit_price, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.Price).Scan(&item.ID)
}

func (t *checkoutTx) ClearCart(ctx context.Context, userID int) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM cart_entries WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresRepository) ListOrders(ctx context.Context, scope service.OrderScope) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []interface{}
	switch {
	case scope.All:
	case scope.DeliveryCrewID > 0:
		query += ` WHERE delivery_crew_id = $1`
		args = append(args, scope.DeliveryCrewID)
	default:
		query += ` WHERE user_id = $1`
		args = append(args, scope.UserID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int]int, len(orders))
	for i, o := range orders {
		ids[i] = int64(o.ID)
		index[o.ID] = i
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, menuitem_id, quantity, unit_price, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.UnitPrice, &item.Price); err != nil {
			return err
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err != nil {
		return nil, notFound(err, "order %d", orderID)
	}
	orders := []domain.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, fmt.Errorf("load items of order %d: %w", orderID, err)
	}
	return &orders[0], nil
}

// SetDeliveryCrew assigns crewID only while that user still holds the
// delivery crew role. It returns the number of orders updated.
func (r *PostgresRepository) SetDeliveryCrew(ctx context.Context, orderID, crewID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET delivery_crew_id = $1
		WHERE id = $2 AND EXISTS (
			SELECT 1 FROM user_profiles WHERE user_id = $1 AND role = 'delivery_crew'
		)
	`, crewID, orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
