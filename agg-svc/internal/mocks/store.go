package mocks

import (
	"context"

	"restaurant-api/agg-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type StoreInterface struct {
	mock.Mock
}

func NewStoreInterface(t testingT) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *StoreInterface) RecordOrder(ctx context.Context, date string, items []domain.OrderEventItem, total decimal.Decimal) error {
	ret := _m.Called(ctx, date, items, total)
	return ret.Error(0)
}

func (_m *StoreInterface) RecordDelivery(ctx context.Context, date string, crewID, orderID int) error {
	ret := _m.Called(ctx, date, crewID, orderID)
	return ret.Error(0)
}

func (_m *StoreInterface) PopularItems(ctx context.Context, date string, limit int) ([]domain.ItemCount, error) {
	ret := _m.Called(ctx, date, limit)
	var r0 []domain.ItemCount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemCount)
	}
	return r0, ret.Error(1)
}

func (_m *StoreInterface) Daily(ctx context.Context, date string) (*domain.DailySummary, error) {
	ret := _m.Called(ctx, date)
	var r0 *domain.DailySummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DailySummary)
	}
	return r0, ret.Error(1)
}

type MessageReader struct {
	mock.Mock
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)
	var r0 kafka.Message
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(kafka.Message)
	}
	return r0, ret.Error(1)
}
