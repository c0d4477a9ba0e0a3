package tests

import (
	"context"
	"errors"
	"sync"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory order store whose transactions run one at a
// time on a staged copy and are applied only on success.
type memStore struct {
	mu          sync.Mutex
	prices      map[int]decimal.Decimal
	carts       map[int][]domain.CartLine
	orders      []domain.Order
	failOnItems bool
}

func newMemStore(prices map[int]string) *memStore {
	s := &memStore{prices: map[int]decimal.Decimal{}, carts: map[int][]domain.CartLine{}}
	for id, p := range prices {
		s.prices[id] = decimal.RequireFromString(p)
	}
	return s
}

func (s *memStore) add(userID, menuItemID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[userID]
	for i := range lines {
		if lines[i].MenuItemID == menuItemID {
			lines[i].Quantity = quantity
			return
		}
	}
	s.carts[userID] = append(lines, domain.CartLine{MenuItemID: menuItemID, Quantity: quantity})
}

func (s *memStore) cartSize(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts[userID])
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type memTx struct {
	store   *memStore
	cleared map[int]bool
	orders  []domain.Order
	items   []domain.OrderItem
	nextID  int
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx service.OrderTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, cleared: map[int]bool{}, nextID: len(s.orders) + 1}
	if err := fn(tx); err != nil {
		return err
	}
	for userID := range tx.cleared {
		delete(s.carts, userID)
	}
	for _, order := range tx.orders {
		for _, item := range tx.items {
			if item.OrderID == order.ID {
				order.Items = append(order.Items, item)
			}
		}
		s.orders = append(s.orders, order)
	}
	return nil
}

func (t *memTx) LockCart(ctx context.Context, userID int) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	for _, line := range t.store.carts[userID] {
		price, ok := t.store.prices[line.MenuItemID]
		line.UnitPrice = price
		line.Available = ok
		lines = append(lines, line)
	}
	return lines, nil
}

func (t *memTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	order.ID = t.nextID
	t.nextID++
	t.orders = append(t.orders, domain.Order{ID: order.ID, UserID: order.UserID, Total: order.Total, Date: order.Date})
	return nil
}

func (t *memTx) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	if t.store.failOnItems {
		return errors.New("connection reset by peer")
	}
	item.ID = len(t.items) + 1
	t.items = append(t.items, *item)
	return nil
}

func (t *memTx) ClearCart(ctx context.Context, userID int) error {
	t.cleared[userID] = true
	return nil
}

func (s *memStore) ListOrders(ctx context.Context, scope service.OrderScope) ([]domain.Order, error) {
	return nil, errors.New("not used")
}

func (s *memStore) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	return nil, errors.New("not used")
}

func (s *memStore) SetDeliveryCrew(ctx context.Context, orderID, crewID int) (int64, error) {
	return 0, errors.New("not used")
}

var fixedNow = time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
