package service

import (
	"context"
	"fmt"

	"restaurant-api/restaurant-svc/internal/domain"
)

type CartService struct {
	repo    CartRepository
	catalog CatalogRepository
}

func NewCartService(repo CartRepository, catalog CatalogRepository) *CartService {
	return &CartService{repo: repo, catalog: catalog}
}

// AddOrUpdateEntry stores quantity for the caller's line of menuItemID. A
// repeated add overwrites the previous quantity.
func (s *CartService) AddOrUpdateEntry(ctx context.Context, caller domain.Identity, menuItemID, quantity int) (*domain.CartEntry, error) {
	if err := Require(caller, CapAuthenticated); err != nil {
		return nil, err
	}
	if quantity <= 0 || quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", domain.ErrInvalidQuantity, quantity, MaxQuantity)
	}
	if menuItemID <= 0 {
		return nil, fmt.Errorf("%w: menu item %d", domain.ErrNotFound, menuItemID)
	}
	item, err := s.catalog.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	price := LineTotal(item.Price, quantity)
	if price.GreaterThan(MaxOrderTotal) {
		return nil, fmt.Errorf("%w: line total exceeds %s", domain.ErrInvalidQuantity, MaxOrderTotal.StringFixed(2))
	}

	entry := &domain.CartEntry{
		UserID:     caller.UserID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      price,
	}
	if err := s.repo.UpsertCartEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CartService) ListEntries(ctx context.Context, caller domain.Identity) ([]domain.CartEntry, error) {
	if err := Require(caller, CapAuthenticated); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListCartEntries(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.CartEntry{}
	}
	return entries, nil
}
