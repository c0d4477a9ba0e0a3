package service

import (
	"context"

	"restaurant-api/agg-svc/internal/domain"
	"restaurant-api/agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, date string, items []domain.OrderEventItem, total decimal.Decimal) error
	RecordDelivery(ctx context.Context, date string, crewID, orderID int) error
	PopularItems(ctx context.Context, date string, limit int) ([]domain.ItemCount, error)
	Daily(ctx context.Context, date string) (*domain.DailySummary, error)
}

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessEvent(ctx context.Context, event domain.OrderEvent) error
}

type AnalyticsInterface interface {
	PopularItems(ctx context.Context, date string, limit int) ([]domain.ItemCount, error)
	Daily(ctx context.Context, date string) (*domain.DailySummary, error)
}

var (
	_ StoreInterface     = (*storage.Store)(nil)
	_ MessageReader      = (*kafka.Reader)(nil)
	_ ConsumerInterface  = (*Consumer)(nil)
	_ AnalyticsInterface = (*AnalyticsService)(nil)
)
