package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"restaurant-api/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const DefaultRetention = 30 * 24 * time.Hour

type Store struct {
	rdb       *redis.Client
	retention time.Duration
}

func NewStore(rdb *redis.Client, retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{rdb: rdb, retention: retention}
}

func ItemsKey(date string) string   { return "analytics:items:" + date }
func RevenueKey(date string) string { return "analytics:revenue:" + date }
func OrdersKey(date string) string  { return "analytics:orders:" + date }

func DeliveriesKey(date string, crewID int) string {
	return fmt.Sprintf("analytics:deliveries:%s:%d", date, crewID)
}

// RecordOrder adds one order to the day's counters in a single MULTI block.
func (s *Store) RecordOrder(ctx context.Context, date string, items []domain.OrderEventItem, total decimal.Decimal) error {
	itemsKey, revenueKey, ordersKey := ItemsKey(date), RevenueKey(date), OrdersKey(date)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range items {
			pipe.ZIncrBy(ctx, itemsKey, float64(item.Quantity), strconv.Itoa(item.MenuItemID))
		}
		pipe.IncrByFloat(ctx, revenueKey, total.InexactFloat64())
		pipe.Incr(ctx, ordersKey)
		pipe.Expire(ctx, itemsKey, s.retention)
		pipe.Expire(ctx, revenueKey, s.retention)
		pipe.Expire(ctx, ordersKey, s.retention)
		return nil
	})
	return err
}

// RecordDelivery adds orderID to the crew member's set for the day, so a
// redelivered or repeated assignment is counted once.
func (s *Store) RecordDelivery(ctx context.Context, date string, crewID, orderID int) error {
	key := DeliveriesKey(date, crewID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, strconv.Itoa(orderID))
		pipe.Expire(ctx, key, s.retention)
		return nil
	})
	return err
}

func (s *Store) PopularItems(ctx context.Context, date string, limit int) ([]domain.ItemCount, error) {
	results, err := s.rdb.ZRevRangeWithScores(ctx, ItemsKey(date), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]domain.ItemCount, 0, len(results))
	for _, z := range results {
		member, _ := z.Member.(string)
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		items = append(items, domain.ItemCount{MenuItemID: id, Quantity: int(z.Score)})
	}
	return items, nil
}

func (s *Store) Daily(ctx context.Context, date string) (*domain.DailySummary, error) {
	summary := &domain.DailySummary{Date: date, Revenue: decimal.Zero}

	orders, err := s.rdb.Get(ctx, OrdersKey(date)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	summary.Orders = orders

	revenue, err := s.rdb.Get(ctx, RevenueKey(date)).Result()
	if errors.Is(err, redis.Nil) {
		return summary, nil
	}
	if err != nil {
		return nil, err
	}
	// INCRBYFLOAT accumulates binary floats; round back to cents.
	amount, err := decimal.NewFromString(revenue)
	if err != nil {
		return nil, fmt.Errorf("parse revenue %q: %w", revenue, err)
	}
	summary.Revenue = amount.Round(2)
	return summary, nil
}
