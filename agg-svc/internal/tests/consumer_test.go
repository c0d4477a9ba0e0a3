package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"restaurant-api/agg-svc/internal/domain"
	"restaurant-api/agg-svc/internal/mocks"
	"restaurant-api/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var eventTime = time.Date(2024, 5, 17, 21, 30, 0, 0, time.UTC)

func TestConsumer_ProcessEvent(t *testing.T) {
	items := []domain.OrderEventItem{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 4, Quantity: 1}}
	total := decimal.RequireFromString("25.50")

	tests := []struct {
		name           string
		event          domain.OrderEvent
		setupMockStore func(*mocks.StoreInterface)
		wantErr        bool
	}{
		{
			name:  "order placed",
			event: domain.OrderEvent{Type: domain.EventOrderPlaced, OrderID: 3, Total: total, Items: items, Timestamp: eventTime},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, "2024-05-17", items, total).Return(nil).Once()
			},
		},
		{
			name:  "order placed store error",
			event: domain.OrderEvent{Type: domain.EventOrderPlaced, OrderID: 3, Total: total, Items: items, Timestamp: eventTime},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", mock.Anything, "2024-05-17", items, total).Return(errors.New("redis error")).Once()
			},
			wantErr: true,
		},
		{
			name:  "delivery assigned",
			event: domain.OrderEvent{Type: domain.EventDeliveryAssigned, OrderID: 3, DeliveryCrewID: 9, Timestamp: eventTime},
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordDelivery", mock.Anything, "2024-05-17", 9, 3).Return(nil).Once()
			},
		},
		{
			name:           "delivery without crew",
			event:          domain.OrderEvent{Type: domain.EventDeliveryAssigned, OrderID: 3, Timestamp: eventTime},
			setupMockStore: func(*mocks.StoreInterface) {},
			wantErr:        true,
		},
		{
			name:           "unknown type ignored",
			event:          domain.OrderEvent{Type: "new_review", OrderID: 3, Timestamp: eventTime},
			setupMockStore: func(*mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)
			consumer := service.NewConsumer(nil, mockStore, nil)

			err := consumer.ProcessEvent(context.Background(), testCase.event)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_UsesUTCDate(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)
	consumer := service.NewConsumer(nil, mockStore, nil)
	late := time.Date(2024, 5, 17, 23, 30, 0, 0, time.FixedZone("UTC-3", -3*3600))

	mockStore.On("RecordDelivery", mock.Anything, "2024-05-18", 9, 4).Return(nil).Once()

	err := consumer.ProcessEvent(context.Background(), domain.OrderEvent{Type: domain.EventDeliveryAssigned, OrderID: 4, DeliveryCrewID: 9, Timestamp: late})

	assert.NoError(t, err)
}

func TestConsumer_StartSkipsBadMessagesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := mocks.NewMessageReader(t)
	mockStore := mocks.NewStoreInterface(t)
	consumer := service.NewConsumer(reader, mockStore, nil)

	placed, _ := json.Marshal(domain.OrderEvent{
		Type:      domain.EventOrderPlaced,
		OrderID:   1,
		Total:     decimal.RequireFromString("4.00"),
		Items:     []domain.OrderEventItem{{MenuItemID: 2, Quantity: 1}},
		Timestamp: eventTime,
	})

	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: []byte("{not json")}, nil).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{}, errors.New("broker unavailable")).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: placed}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(kafka.Message{}, context.Canceled).Once()
	mockStore.On("RecordOrder", mock.Anything, "2024-05-17", []domain.OrderEventItem{{MenuItemID: 2, Quantity: 1}}, mock.Anything).Return(nil).Once()

	done := make(chan struct{})
	go func() {
		consumer.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
