package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

const (
	EventOrderPlaced      = "order_placed"
	EventDeliveryAssigned = "delivery_assigned"
)

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// OrderEvent is the message restaurant-svc publishes on the orders topic.
type OrderEvent struct {
	Type           string           `json:"type"`
	OrderID        int              `json:"order_id"`
	UserID         int              `json:"user_id,omitempty"`
	Total          decimal.Decimal  `json:"total"`
	Items          []OrderEventItem `json:"items,omitempty"`
	DeliveryCrewID int              `json:"delivery_crew_id,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	MenuItemID int `json:"menuitem_id"`
	Quantity   int `json:"quantity"`
}

type ItemCount struct {
	MenuItemID int `json:"menuitem_id"`
	Quantity   int `json:"quantity"`
}

type DailySummary struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MarshalJSON writes revenue with two decimals.
func (d DailySummary) MarshalJSON() ([]byte, error) {
	type plain DailySummary
	return json.Marshal(struct {
		plain
		Revenue string `json:"revenue"`
	}{plain(d), d.Revenue.StringFixed(2)})
}
