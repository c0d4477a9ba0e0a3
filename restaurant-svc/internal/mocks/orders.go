package mocks

import (
	"context"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CartRepository) UpsertCartEntry(ctx context.Context, entry *domain.CartEntry) error {
	ret := _m.Called(ctx, entry)
	return ret.Error(0)
}

func (_m *CartRepository) ListCartEntries(ctx context.Context, userID int) ([]domain.CartEntry, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.CartEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartEntry)
	}
	return r0, ret.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithinTx returns the configured error, or calls the configured function
// with fn when the return value is one.
func (_m *OrderRepository) WithinTx(ctx context.Context, fn func(tx service.OrderTx) error) error {
	ret := _m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(service.OrderTx) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

func (_m *OrderRepository) ListOrders(ctx context.Context, scope service.OrderScope) ([]domain.Order, error) {
	ret := _m.Called(ctx, scope)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) SetDeliveryCrew(ctx context.Context, orderID, crewID int) (int64, error) {
	ret := _m.Called(ctx, orderID, crewID)
	var r0 int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(int64)
	}
	return r0, ret.Error(1)
}

type OrderTx struct {
	mock.Mock
}

func NewOrderTx(t testingT) *OrderTx {
	m := &OrderTx{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderTx) LockCart(ctx context.Context, userID int) ([]domain.CartLine, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *OrderTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *OrderTx) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *OrderTx) ClearCart(ctx context.Context, userID int) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QRGenerator) Generate(order *domain.Order) ([]byte, error) {
	ret := _m.Called(order)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}
