package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"restaurant-api/logger"
	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var maxPrice = decimal.RequireFromString("9999.99")

var menuOrderings = map[string]bool{
	"price":  true,
	"-price": true,
	"title":  true,
	"-title": true,
}

type CatalogService struct {
	repo  CatalogRepository
	cache MenuCache
	log   *logger.Logger
}

func NewCatalogService(repo CatalogRepository, cache MenuCache, log *logger.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: log}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, caller domain.Identity, category *domain.Category) error {
	if err := Require(caller, CapManager); err != nil {
		return err
	}
	category.Title = strings.TrimSpace(category.Title)
	if category.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// NormalizeMenuFilter clamps paging and drops unknown orderings.
func NormalizeMenuFilter(filter domain.MenuFilter) domain.MenuFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = DefaultPerPage
	}
	if filter.PerPage > MaxPerPage {
		filter.PerPage = MaxPerPage
	}
	if !menuOrderings[filter.Ordering] {
		filter.Ordering = ""
	}
	if filter.CategoryID < 0 {
		filter.CategoryID = 0
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return filter
}

func (s *CatalogService) ListMenuItems(ctx context.Context, filter domain.MenuFilter) (*domain.MenuPage, error) {
	filter = NormalizeMenuFilter(filter)

	if s.cache != nil {
		page, ok, err := s.cache.GetMenuPage(ctx, filter)
		if err != nil {
			s.log.Warn("menu_cache_get", logger.RequestID(ctx), "menu cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return page, nil
		}
	}

	items, count, err := s.repo.ListMenuItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	page := &domain.MenuPage{
		Count:   count,
		Page:    filter.Page,
		PerPage: filter.PerPage,
		Results: items,
	}

	if s.cache != nil {
		if err := s.cache.SetMenuPage(ctx, filter, page); err != nil {
			s.log.Warn("menu_cache_set", logger.RequestID(ctx), "menu cache write failed", slog.String("error", err.Error()))
		}
	}
	return page, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: menu item %d", domain.ErrNotFound, id)
	}
	return s.repo.GetMenuItem(ctx, id)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, caller domain.Identity, item *domain.MenuItem) error {
	if err := Require(caller, CapManager); err != nil {
		return err
	}
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := ValidatePrice(item.Price); err != nil {
		return err
	}
	if _, err := s.repo.GetCategory(ctx, item.CategoryID); err != nil {
		return err
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ValidatePrice accepts positive prices with at most two decimals that fit
// the menu_items.price column.
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if !price.Equal(price.Truncate(2)) {
		return fmt.Errorf("%w: price must have at most 2 decimal places", domain.ErrInvalidInput)
	}
	if price.GreaterThan(maxPrice) {
		return fmt.Errorf("%w: price must not exceed %s", domain.ErrInvalidInput, maxPrice.StringFixed(2))
	}
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("menu_cache_invalidate", logger.RequestID(ctx), "menu cache invalidation failed", slog.String("error", err.Error()))
	}
}
