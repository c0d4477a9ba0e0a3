package mocks

import (
	"context"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t testingT) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *CatalogRepository) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, int, error) {
	ret := _m.Called(ctx, filter)
	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Int(1), ret.Error(2)
}

func (_m *CatalogRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

type MenuCache struct {
	mock.Mock
}

func NewMenuCache(t testingT) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MenuCache) GetMenuPage(ctx context.Context, filter domain.MenuFilter) (*domain.MenuPage, bool, error) {
	ret := _m.Called(ctx, filter)
	var r0 *domain.MenuPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuPage)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

func (_m *MenuCache) SetMenuPage(ctx context.Context, filter domain.MenuFilter, page *domain.MenuPage) error {
	ret := _m.Called(ctx, filter, page)
	return ret.Error(0)
}

func (_m *MenuCache) Invalidate(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}
