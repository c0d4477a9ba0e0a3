package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMenuCache(t *testing.T) (*storage.RedisMenuCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisMenuCache(client, time.Minute), mr
}

func TestRedisMenuCache_RoundTrip(t *testing.T) {
	cache, mr := setupMenuCache(t)
	ctx := context.Background()
	filter := domain.MenuFilter{Page: 1, PerPage: 10, Search: "green tea"}
	page := &domain.MenuPage{Count: 1, Page: 1, PerPage: 10, Results: []domain.MenuItem{{ID: 4, Title: "Green tea", Price: dec("2.40"), CategoryID: 3}}}

	_, ok, err := cache.GetMenuPage(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetMenuPage(ctx, filter, page))
	assert.True(t, mr.Exists(cache.MenuPageKey(0, filter)))
	assert.Equal(t, time.Minute, mr.TTL(cache.MenuPageKey(0, filter)))

	got, ok, err := cache.GetMenuPage(ctx, filter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "Green tea", got.Results[0].Title)
	assert.True(t, dec("2.40").Equal(got.Results[0].Price))
}

func TestRedisMenuCache_InvalidateDropsPages(t *testing.T) {
	cache, _ := setupMenuCache(t)
	ctx := context.Background()
	filter := domain.MenuFilter{Page: 1, PerPage: 10}

	require.NoError(t, cache.SetMenuPage(ctx, filter, &domain.MenuPage{Page: 1, PerPage: 10, Results: []domain.MenuItem{}}))
	require.NoError(t, cache.Invalidate(ctx))

	_, ok, err := cache.GetMenuPage(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisMenuCache_KeysDifferByFilter(t *testing.T) {
	cache, _ := setupMenuCache(t)

	a := cache.MenuPageKey(1, domain.MenuFilter{Page: 1, PerPage: 10, Ordering: "price"})
	b := cache.MenuPageKey(1, domain.MenuFilter{Page: 1, PerPage: 10, Ordering: "-price"})
	c := cache.MenuPageKey(2, domain.MenuFilter{Page: 1, PerPage: 10, Ordering: "price"})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "menu:v1:c0:oprice:p1:n10:s", a)
}

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher_PublishOrderEvent(t *testing.T) {
	writer := &recordingWriter{}
	publisher := storage.NewKafkaPublisher(writer)
	event := domain.OrderEvent{
		Type:      domain.EventOrderPlaced,
		OrderID:   31,
		UserID:    7,
		Total:     dec("25.50"),
		Items:     []domain.OrderEventItem{{MenuItemID: 1, Quantity: 2}},
		Timestamp: fixedNow,
	}

	require.NoError(t, publisher.PublishOrderEvent(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "31", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, domain.EventOrderPlaced, string(msg.Headers[0].Value))

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.OrderID, decoded.OrderID)
	assert.Equal(t, event.Items, decoded.Items)
	assert.True(t, event.Total.Equal(decoded.Total))
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	publisher := storage.NewKafkaPublisher(&recordingWriter{err: errors.New("leader not available")})

	err := publisher.PublishOrderEvent(context.Background(), domain.OrderEvent{Type: domain.EventDeliveryAssigned, OrderID: 1})

	assert.EqualError(t, err, "leader not available")
}
