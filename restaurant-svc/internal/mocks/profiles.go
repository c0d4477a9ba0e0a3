package mocks

import (
	"context"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ProfileRepository struct {
	mock.Mock
}

func NewProfileRepository(t testingT) *ProfileRepository {
	m := &ProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ProfileRepository) EnsureUser(ctx context.Context, user domain.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *ProfileRepository) UserExists(ctx context.Context, userID int) (bool, error) {
	ret := _m.Called(ctx, userID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *ProfileRepository) GetProfile(ctx context.Context, userID int) (*domain.UserProfile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *domain.UserProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.UserProfile)
	}
	return r0, ret.Error(1)
}

func (_m *ProfileRepository) SetRole(ctx context.Context, userID int, role domain.Role) error {
	ret := _m.Called(ctx, userID, role)
	return ret.Error(0)
}

func (_m *ProfileRepository) UpdateAddress(ctx context.Context, userID int, address string) (*domain.UserProfile, error) {
	ret := _m.Called(ctx, userID, address)
	var r0 *domain.UserProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.UserProfile)
	}
	return r0, ret.Error(1)
}
