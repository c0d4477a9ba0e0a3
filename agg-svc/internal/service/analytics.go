package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-api/agg-svc/internal/domain"
)

const (
	DefaultPopularLimit = 10
	MaxPopularLimit     = 100
)

type AnalyticsService struct {
	Store StoreInterface
	now   func() time.Time
}

func NewAnalyticsService(store StoreInterface) *AnalyticsService {
	return &AnalyticsService{Store: store, now: time.Now}
}

func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

// resolveDate defaults to today in UTC and rejects anything not in
// YYYY-MM-DD form.
func (s *AnalyticsService) resolveDate(date string) (string, error) {
	if date == "" {
		return s.now().UTC().Format(domain.DateLayout), nil
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: got %q", domain.ErrInvalidDate, date)
	}
	return date, nil
}

func (s *AnalyticsService) PopularItems(ctx context.Context, date string, limit int) ([]domain.ItemCount, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if limit > MaxPopularLimit {
		limit = MaxPopularLimit
	}
	items, err := s.Store.PopularItems(ctx, date, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ItemCount{}
	}
	return items, nil
}

func (s *AnalyticsService) Daily(ctx context.Context, date string) (*domain.DailySummary, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.Store.Daily(ctx, date)
}
