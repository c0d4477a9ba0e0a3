package service

import (
	"context"

	"restaurant-api/restaurant-svc/internal/domain"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, int, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
}

type MenuCache interface {
	GetMenuPage(ctx context.Context, filter domain.MenuFilter) (*domain.MenuPage, bool, error)
	SetMenuPage(ctx context.Context, filter domain.MenuFilter, page *domain.MenuPage) error
	Invalidate(ctx context.Context) error
}

type CartRepository interface {
	UpsertCartEntry(ctx context.Context, entry *domain.CartEntry) error
	ListCartEntries(ctx context.Context, userID int) ([]domain.CartEntry, error)
}

// OrderScope selects which orders a listing returns. All wins over the
// other fields, then DeliveryCrewID, then UserID.
type OrderScope struct {
	All            bool
	UserID         int
	DeliveryCrewID int
}

type OrderRepository interface {
	WithinTx(ctx context.Context, fn func(tx OrderTx) error) error
	ListOrders(ctx context.Context, scope OrderScope) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	SetDeliveryCrew(ctx context.Context, orderID, crewID int) (int64, error)
}

// OrderTx is the checkout unit of work. Every call runs inside the same
// database transaction.
type OrderTx interface {
	LockCart(ctx context.Context, userID int) ([]domain.CartLine, error)
	InsertOrder(ctx context.Context, order *domain.Order) error
	InsertOrderItem(ctx context.Context, item *domain.OrderItem) error
	ClearCart(ctx context.Context, userID int) error
}

type ProfileRepository interface {
	EnsureUser(ctx context.Context, user domain.User) error
	UserExists(ctx context.Context, userID int) (bool, error)
	GetProfile(ctx context.Context, userID int) (*domain.UserProfile, error)
	SetRole(ctx context.Context, userID int, role domain.Role) error
	UpdateAddress(ctx context.Context, userID int, address string) (*domain.UserProfile, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(order *domain.Order) ([]byte, error)
}

type CatalogServiceInterface interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, caller domain.Identity, category *domain.Category) error
	ListMenuItems(ctx context.Context, filter domain.MenuFilter) (*domain.MenuPage, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, caller domain.Identity, item *domain.MenuItem) error
}

type CartServiceInterface interface {
	AddOrUpdateEntry(ctx context.Context, caller domain.Identity, menuItemID, quantity int) (*domain.CartEntry, error)
	ListEntries(ctx context.Context, caller domain.Identity) ([]domain.CartEntry, error)
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, caller domain.Identity) (*domain.Order, error)
	ListOrders(ctx context.Context, caller domain.Identity) ([]domain.Order, error)
	GetOrder(ctx context.Context, caller domain.Identity, orderID int) (*domain.Order, error)
	ReceiptQR(ctx context.Context, caller domain.Identity, orderID int) ([]byte, error)
	AssignDeliveryCrew(ctx context.Context, caller domain.Identity, orderID, crewID int) (*domain.Order, error)
}

type ProfileServiceInterface interface {
	Resolve(ctx context.Context, user domain.User) (domain.Identity, error)
	GetProfile(ctx context.Context, caller domain.Identity) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, caller domain.Identity, patch domain.ProfilePatch) (*domain.UserProfile, error)
	AssignManager(ctx context.Context, caller domain.Identity, userID int) (*domain.UserProfile, error)
	GrantDeliveryCrew(ctx context.Context, caller domain.Identity, userID int) (*domain.UserProfile, error)
	RevokeRole(ctx context.Context, caller domain.Identity, userID int) (*domain.UserProfile, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ CartServiceInterface    = (*CartService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ ProfileServiceInterface = (*ProfileService)(nil)
)
