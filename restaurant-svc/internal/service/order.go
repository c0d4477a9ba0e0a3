package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant-api/logger"
	"restaurant-api/restaurant-svc/internal/domain"
)

type OrderService struct {
	repo      OrderRepository
	profiles  ProfileRepository
	publisher EventPublisher
	qrEncoder QRGenerator
	log       *logger.Logger
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, profiles ProfileRepository, publisher EventPublisher, qr QRGenerator, log *logger.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		profiles:  profiles,
		publisher: publisher,
		qrEncoder: qr,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the order date source.
func (s *OrderService) SetClock(now func() time.Time) {
	s.now = now
}

// PlaceOrder checks out the caller's cart. Locking the cart, writing the
// order with its items and clearing the cart happen in one transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, caller domain.Identity) (*domain.Order, error) {
	if err := Require(caller, CapAuthenticated); err != nil {
		return nil, err
	}

	var placed *domain.Order
	err := s.repo.WithinTx(ctx, func(tx OrderTx) error {
		lines, err := tx.LockCart(ctx, caller.UserID)
		if err != nil {
			return err
		}
		order, err := BuildOrder(caller.UserID, lines, s.now())
		if err != nil {
			return err
		}
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.InsertOrderItem(ctx, &order.Items[i]); err != nil {
				return err
			}
		}
		if err := tx.ClearCart(ctx, caller.UserID); err != nil {
			return err
		}
		placed = order
		return nil
	})
	if err != nil {
		return nil, checkoutError(err)
	}

	s.log.Info("place_order", logger.RequestID(ctx), "order placed",
		slog.Int("order_id", placed.ID),
		slog.Int("user_id", placed.UserID),
		slog.String("total", placed.Total.StringFixed(2)),
	)
	s.publish(ctx, orderPlacedEvent(placed))
	return placed, nil
}

// checkoutError keeps domain failures as they are and reports everything
// else as a failed transaction the client may retry.
func checkoutError(err error) error {
	if domain.ErrorKind(err) != "internal" {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
}

func (s *OrderService) ListOrders(ctx context.Context, caller domain.Identity) ([]domain.Order, error) {
	if err := Require(caller, CapAuthenticated); err != nil {
		return nil, err
	}

	var scope OrderScope
	switch {
	case Can(caller, CapManager):
		scope.All = true
	case Can(caller, CapDeliveryCrew):
		scope.DeliveryCrewID = caller.UserID
	default:
		scope.UserID = caller.UserID
	}

	orders, err := s.repo.ListOrders(ctx, scope)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// GetOrder returns the order when the caller may see it. Orders hidden from
// the caller are reported as missing.
func (s *OrderService) GetOrder(ctx context.Context, caller domain.Identity, orderID int) (*domain.Order, error) {
	if err := Require(caller, CapAuthenticated); err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanView(caller, order) {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	return order, nil
}

func CanView(caller domain.Identity, order *domain.Order) bool {
	if Can(caller, CapManager) || order.UserID == caller.UserID {
		return true
	}
	return Can(caller, CapDeliveryCrew) && order.DeliveryCrewID != nil && *order.DeliveryCrewID == caller.UserID
}

func (s *OrderService) ReceiptQR(ctx context.Context, caller domain.Identity, orderID int) ([]byte, error) {
	order, err := s.GetOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if s.qrEncoder == nil {
		return nil, errors.New("receipt QR codes are not configured")
	}
	return s.qrEncoder.Generate(order)
}

func (s *OrderService) AssignDeliveryCrew(ctx context.Context, caller domain.Identity, orderID, crewID int) (*domain.Order, error) {
	if err := Require(caller, CapManager); err != nil {
		return nil, err
	}
	current, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	unchanged := current.DeliveryCrewID != nil && *current.DeliveryCrewID == crewID

	exists, err := s.profiles.UserExists(ctx, crewID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, crewID)
	}
	profile, err := s.profiles.GetProfile(ctx, crewID)
	if err != nil {
		return nil, err
	}
	if !profile.Role.IsDeliveryCrew() {
		return nil, fmt.Errorf("%w: user %d is not delivery crew", domain.ErrInvalidRole, crewID)
	}

	// The update re-checks the role so a concurrent demotion cannot slip in.
	rows, err := s.repo.SetDeliveryCrew(ctx, orderID, crewID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: user %d is not delivery crew", domain.ErrInvalidRole, crewID)
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if unchanged {
		return order, nil
	}

	s.log.Info("assign_delivery_crew", logger.RequestID(ctx), "delivery crew assigned",
		slog.Int("order_id", orderID),
		slog.Int("delivery_crew_id", crewID),
	)
	s.publish(ctx, domain.OrderEvent{
		Type:           domain.EventDeliveryAssigned,
		OrderID:        orderID,
		UserID:         order.UserID,
		Total:          order.Total,
		DeliveryCrewID: crewID,
		Timestamp:      s.now(),
	})
	return order, nil
}

func orderPlacedEvent(order *domain.Order) domain.OrderEvent {
	items := make([]domain.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.OrderEventItem{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}
	return domain.OrderEvent{
		Type:      domain.EventOrderPlaced,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		Items:     items,
		Timestamp: order.Date,
	}
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Error("publish_order_event", logger.RequestID(ctx), "failed to publish order event", err,
			slog.String("type", event.Type),
			slog.Int("order_id", event.OrderID),
		)
	}
}
