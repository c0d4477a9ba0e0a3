package service

import (
	"fmt"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// MaxQuantity bounds a single cart line. MaxOrderTotal is the largest amount
// the orders.total and order_items.price columns hold.
const MaxQuantity = 1000

var MaxOrderTotal = decimal.RequireFromString("999999.99")

// RoundCents rounds to two decimal places, halves away from zero. Prices are
// never negative so this is round-half-up.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return RoundCents(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// BuildOrder turns locked cart lines into an unsaved order whose total is
// the sum of the snapshot line totals.
func BuildOrder(userID int, lines []domain.CartLine, now time.Time) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{
		UserID: userID,
		Date:   now,
		Items:  make([]domain.OrderItem, 0, len(lines)),
	}
	total := decimal.Zero
	for _, line := range lines {
		if !line.Available {
			return nil, fmt.Errorf("%w: menu item %d is no longer on the menu", domain.ErrNotFound, line.MenuItemID)
		}
		if line.Quantity <= 0 || line.Quantity > MaxQuantity {
			return nil, fmt.Errorf("%w: menu item %d has quantity %d", domain.ErrInvalidQuantity, line.MenuItemID, line.Quantity)
		}
		price := LineTotal(line.UnitPrice, line.Quantity)
		total = total.Add(price)
		if total.GreaterThan(MaxOrderTotal) {
			return nil, fmt.Errorf("%w: order total exceeds %s", domain.ErrInvalidQuantity, MaxOrderTotal.StringFixed(2))
		}
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Price:      price,
		})
	}
	order.Total = RoundCents(total)
	return order, nil
}
