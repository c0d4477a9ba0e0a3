package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"restaurant-api/agg-svc/internal/domain"
	"restaurant-api/logger"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *logger.Logger
}

func NewConsumer(reader MessageReader, store StoreInterface, log *logger.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Log:    log,
	}
}

// Start reads order events until ctx is cancelled. Malformed messages and
// failed updates are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("consume", "", "starting order event consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Log.Info("consume", "", "order event consumer stopped")
				return
			}
			c.Log.Error("consume", "", "error reading message", err)
			continue
		}

		requestID := messageID(message)
		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.Warn("consume", requestID, "skipping malformed message", slog.String("error", err.Error()))
			continue
		}

		if err := c.ProcessEvent(ctx, event); err != nil {
			c.Log.Error("consume", requestID, "failed to record order event", err,
				slog.String("type", event.Type),
				slog.Int("order_id", event.OrderID),
			)
		}
	}
}

func messageID(m kafka.Message) string {
	return fmt.Sprintf("%s/%d/%d", m.Topic, m.Partition, m.Offset)
}

// ProcessEvent folds one event into the daily aggregates. Unknown event
// types are ignored.
func (c *Consumer) ProcessEvent(ctx context.Context, event domain.OrderEvent) error {
	date := eventDate(event.Timestamp)

	switch event.Type {
	case domain.EventOrderPlaced:
		if err := c.Store.RecordOrder(ctx, date, event.Items, event.Total); err != nil {
			return err
		}
		c.Log.Debug("record_order", "", "order recorded",
			slog.Int("order_id", event.OrderID),
			slog.String("date", date),
		)
	case domain.EventDeliveryAssigned:
		if event.DeliveryCrewID <= 0 {
			return fmt.Errorf("order %d: delivery event without crew", event.OrderID)
		}
		if err := c.Store.RecordDelivery(ctx, date, event.DeliveryCrewID, event.OrderID); err != nil {
			return err
		}
	}
	return nil
}

func eventDate(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.UTC().Format(domain.DateLayout)
}
