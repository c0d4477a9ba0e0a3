package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type MenuItem struct {
	ID         int             `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	CategoryID int             `json:"category_id"`
}

// MenuFilter is the query accepted by the menu listing.
type MenuFilter struct {
	CategoryID int    `json:"category,omitempty"`
	Search     string `json:"search,omitempty"`
	Ordering   string `json:"ordering,omitempty"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perpage"`
}

type MenuPage struct {
	Count   int        `json:"count"`
	Page    int        `json:"page"`
	PerPage int        `json:"perpage"`
	Results []MenuItem `json:"results"`
}

type CartEntry struct {
	UserID     int             `json:"user_id"`
	MenuItemID int             `json:"menuitem_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Price      decimal.Decimal `json:"price"`
}

// CartLine is a cart entry joined with the menu price at checkout time.
// Available is false when the menu item no longer exists.
type CartLine struct {
	MenuItemID int
	Quantity   int
	UnitPrice  decimal.Decimal
	Available  bool
}

type Order struct {
	ID             int             `json:"id"`
	UserID         int             `json:"user_id"`
	Total          decimal.Decimal `json:"total"`
	Date           time.Time       `json:"date"`
	DeliveryCrewID *int            `json:"delivery_crew"`
	Items          []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID         int             `json:"id"`
	OrderID    int             `json:"order_id"`
	MenuItemID int             `json:"menuitem_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Price      decimal.Decimal `json:"price"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type UserProfile struct {
	UserID  int    `json:"user_id"`
	Role    Role   `json:"role"`
	Address string `json:"address"`
}

// ProfilePatch holds the self-service fields of a profile.
type ProfilePatch struct {
	Address *string `json:"address"`
}

// OrderEvent is published to Kafka after an order changes.
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

const (
	EventOrderPlaced      = "order_placed"
	EventDeliveryAssigned = "delivery_assigned"
)
