package tests

import (
	"context"
	"testing"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/mocks"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMenuFilter(t *testing.T) {
	tests := []struct {
		name string
		in   domain.MenuFilter
		want domain.MenuFilter
	}{
		{name: "defaults", in: domain.MenuFilter{}, want: domain.MenuFilter{Page: 1, PerPage: 10}},
		{name: "per page capped", in: domain.MenuFilter{Page: 3, PerPage: 1000}, want: domain.MenuFilter{Page: 3, PerPage: 100}},
		{name: "unknown ordering dropped", in: domain.MenuFilter{Ordering: "id; DROP TABLE orders"}, want: domain.MenuFilter{Page: 1, PerPage: 10}},
		{name: "descending price kept", in: domain.MenuFilter{Ordering: "-price", PerPage: 5}, want: domain.MenuFilter{Page: 1, PerPage: 5, Ordering: "-price"}},
		{name: "search trimmed", in: domain.MenuFilter{Search: "  soup ", CategoryID: -4}, want: domain.MenuFilter{Page: 1, PerPage: 10, Search: "soup"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.NormalizeMenuFilter(testCase.in))
		})
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		price string
		valid bool
	}{
		{price: "0.01", valid: true},
		{price: "12.50", valid: true},
		{price: "9999.99", valid: true},
		{price: "0", valid: false},
		{price: "-3.00", valid: false},
		{price: "1.005", valid: false},
		{price: "10000.00", valid: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.price, func(t *testing.T) {
			err := service.ValidatePrice(dec(testCase.price))
			if testCase.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestCatalogService_ListMenuItemsCache(t *testing.T) {
	ctx := context.Background()
	filter := domain.MenuFilter{Page: 1, PerPage: 10}
	cached := &domain.MenuPage{Count: 1, Page: 1, PerPage: 10, Results: []domain.MenuItem{{ID: 1, Title: "Soup", Price: dec("4.00")}}}

	t.Run("hit skips the store", func(t *testing.T) {
		repo := mocks.NewCatalogRepository(t)
		cache := mocks.NewMenuCache(t)
		svc := service.NewCatalogService(repo, cache, nil)
		cache.On("GetMenuPage", ctx, filter).Return(cached, true, nil).Once()

		page, err := svc.ListMenuItems(ctx, domain.MenuFilter{})

		require.NoError(t, err)
		assert.Equal(t, cached, page)
		repo.AssertNotCalled(t, "ListMenuItems", mock.Anything, mock.Anything)
	})

	t.Run("miss fills the cache", func(t *testing.T) {
		repo := mocks.NewCatalogRepository(t)
		cache := mocks.NewMenuCache(t)
		svc := service.NewCatalogService(repo, cache, nil)
		cache.On("GetMenuPage", ctx, filter).Return(nil, false, nil).Once()
		repo.On("ListMenuItems", ctx, filter).Return(cached.Results, 1, nil).Once()
		cache.On("SetMenuPage", ctx, filter, cached).Return(nil).Once()

		page, err := svc.ListMenuItems(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, cached, page)
	})

	t.Run("cache failure falls back to the store", func(t *testing.T) {
		repo := mocks.NewCatalogRepository(t)
		cache := mocks.NewMenuCache(t)
		svc := service.NewCatalogService(repo, cache, nil)
		cache.On("GetMenuPage", ctx, filter).Return(nil, false, assert.AnError).Once()
		repo.On("ListMenuItems", ctx, filter).Return(nil, 0, nil).Once()
		cache.On("SetMenuPage", ctx, filter, mock.Anything).Return(assert.AnError).Once()

		page, err := svc.ListMenuItems(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)
		assert.NotNil(t, page.Results)
	})
}

func TestCatalogService_CreateMenuItem(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  domain.Identity
		item    domain.MenuItem
		setup   func(repo *mocks.CatalogRepository, cache *mocks.MenuCache)
		wantErr error
	}{
		{
			name:    "anonymous",
			caller:  domain.Identity{},
			item:    domain.MenuItem{Title: "Soup", Price: dec("4.00"), CategoryID: 1},
			setup:   func(*mocks.CatalogRepository, *mocks.MenuCache) {},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "customer forbidden",
			caller:  customer,
			item:    domain.MenuItem{Title: "Soup", Price: dec("4.00"), CategoryID: 1},
			setup:   func(*mocks.CatalogRepository, *mocks.MenuCache) {},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "blank title",
			caller:  manager,
			item:    domain.MenuItem{Title: "  ", Price: dec("4.00"), CategoryID: 1},
			setup:   func(*mocks.CatalogRepository, *mocks.MenuCache) {},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:   "unknown category",
			caller: manager,
			item:   domain.MenuItem{Title: "Soup", Price: dec("4.00"), CategoryID: 99},
			setup: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				repo.On("GetCategory", ctx, 99).Return(nil, domain.ErrNotFound).Once()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "created by manager",
			caller: manager,
			item:   domain.MenuItem{Title: " Soup ", Price: dec("4.00"), CategoryID: 1},
			setup: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				repo.On("GetCategory", ctx, 1).Return(&domain.Category{ID: 1, Title: "Starters"}, nil).Once()
				repo.On("CreateMenuItem", ctx, mock.MatchedBy(func(item *domain.MenuItem) bool { return item.Title == "Soup" })).
					Run(func(args mock.Arguments) { args.Get(1).(*domain.MenuItem).ID = 12 }).
					Return(nil).Once()
				cache.On("Invalidate", ctx).Return(nil).Once()
			},
		},
		{
			name:   "created by admin",
			caller: admin,
			item:   domain.MenuItem{Title: "Tea", Price: dec("1.20"), CategoryID: 1},
			setup: func(repo *mocks.CatalogRepository, cache *mocks.MenuCache) {
				repo.On("GetCategory", ctx, 1).Return(&domain.Category{ID: 1}, nil).Once()
				repo.On("CreateMenuItem", ctx, mock.Anything).Return(nil).Once()
				cache.On("Invalidate", ctx).Return(assert.AnError).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewCatalogRepository(t)
			cache := mocks.NewMenuCache(t)
			svc := service.NewCatalogService(repo, cache, nil)
			testCase.setup(repo, cache)

			item := testCase.item
			err := svc.CreateMenuItem(ctx, testCase.caller, &item)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				repo.AssertNotCalled(t, "CreateMenuItem", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCatalogService_CreateCategory(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCatalogRepository(t)
	svc := service.NewCatalogService(repo, nil, nil)

	err := svc.CreateCategory(ctx, crew, &domain.Category{Title: "Drinks"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.On("CreateCategory", ctx, &domain.Category{Title: "Drinks"}).Return(nil).Once()
	err = svc.CreateCategory(ctx, manager, &domain.Category{Title: "Drinks "})
	assert.NoError(t, err)
}

func TestCatalogService_GetMenuItemRejectsBadID(t *testing.T) {
	svc := service.NewCatalogService(mocks.NewCatalogRepository(t), nil, nil)

	_, err := svc.GetMenuItem(context.Background(), 0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
