package mocks

import (
	"context"

	"warung-site/admin-svc/internal/service"
	"warung-site/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type AuthServiceInterface struct {
	mock.Mock
}

func (_m *AuthServiceInterface) Login(ctx context.Context, req service.LoginRequest) (service.LoginResult, error) {
	ret := _m.Called(ctx, req)
	return ret.Get(0).(service.LoginResult), ret.Error(1)
}

func (_m *AuthServiceInterface) Authenticate(ctx context.Context, token string) (domain.AdminSession, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(domain.AdminSession), ret.Error(1)
}

func (_m *AuthServiceInterface) Logout(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)
	return ret.Error(0)
}

func NewAuthServiceInterface(t testingT) *AuthServiceInterface {
	m := &AuthServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type DashboardServiceInterface struct {
	mock.Mock
}

func (_m *DashboardServiceInterface) Load(ctx context.Context) (service.Dashboard, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.Dashboard), ret.Error(1)
}

func NewDashboardServiceInterface(t testingT) *DashboardServiceInterface {
	m := &DashboardServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ReservationServiceInterface struct {
	mock.Mock
}

func (_m *ReservationServiceInterface) List(ctx context.Context, filter service.ListFilter) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, filter)
	list, _ := ret.Get(0).([]domain.Reservation)
	return list, ret.Error(1)
}

func (_m *ReservationServiceInterface) Get(ctx context.Context, id string) (domain.Reservation, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(domain.Reservation), ret.Error(1)
}

func (_m *ReservationServiceInterface) Confirm(ctx context.Context, id string) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, id)
	list, _ := ret.Get(0).([]domain.Reservation)
	return list, ret.Error(1)
}

func (_m *ReservationServiceInterface) Cancel(ctx context.Context, id string) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, id)
	list, _ := ret.Get(0).([]domain.Reservation)
	return list, ret.Error(1)
}

func NewReservationServiceInterface(t testingT) *ReservationServiceInterface {
	m := &ReservationServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type OrderServiceInterface struct {
	mock.Mock
}

func (_m *OrderServiceInterface) List(ctx context.Context, filter service.ListFilter) ([]domain.Order, error) {
	ret := _m.Called(ctx, filter)
	list, _ := ret.Get(0).([]domain.Order)
	return list, ret.Error(1)
}

func (_m *OrderServiceInterface) Get(ctx context.Context, id string) (domain.Order, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(domain.Order), ret.Error(1)
}

func (_m *OrderServiceInterface) Advance(ctx context.Context, id string) ([]domain.Order, error) {
	ret := _m.Called(ctx, id)
	list, _ := ret.Get(0).([]domain.Order)
	return list, ret.Error(1)
}

func (_m *OrderServiceInterface) Cancel(ctx context.Context, id string) ([]domain.Order, error) {
	ret := _m.Called(ctx, id)
	list, _ := ret.Get(0).([]domain.Order)
	return list, ret.Error(1)
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MenuServiceInterface struct {
	mock.Mock
}

func (_m *MenuServiceInterface) List(ctx context.Context, category string) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, category)
	items, _ := ret.Get(0).([]domain.MenuItem)
	return items, ret.Error(1)
}

func (_m *MenuServiceInterface) Create(ctx context.Context, req service.NewMenuItem) (domain.MenuItem, error) {
	ret := _m.Called(ctx, req)
	return ret.Get(0).(domain.MenuItem), ret.Error(1)
}

func (_m *MenuServiceInterface) Rename(ctx context.Context, id, name string) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, id, name)
	items, _ := ret.Get(0).([]domain.MenuItem)
	return items, ret.Error(1)
}

func (_m *MenuServiceInterface) Delete(ctx context.Context, id string) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	items, _ := ret.Get(0).([]domain.MenuItem)
	return items, ret.Error(1)
}

func NewMenuServiceInterface(t testingT) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type SettingsServiceInterface struct {
	mock.Mock
}

func (_m *SettingsServiceInterface) Hours(ctx context.Context) (domain.OperatingHours, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.OperatingHours), ret.Error(1)
}

func (_m *SettingsServiceInterface) Info(ctx context.Context) (domain.RestaurantInfo, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.RestaurantInfo), ret.Error(1)
}

func (_m *SettingsServiceInterface) UpdateHours(ctx context.Context, hours domain.OperatingHours) (domain.OperatingHours, error) {
	ret := _m.Called(ctx, hours)
	return ret.Get(0).(domain.OperatingHours), ret.Error(1)
}

func (_m *SettingsServiceInterface) UpdateInfo(ctx context.Context, info domain.RestaurantInfo) (domain.RestaurantInfo, error) {
	ret := _m.Called(ctx, info)
	return ret.Get(0).(domain.RestaurantInfo), ret.Error(1)
}

func NewSettingsServiceInterface(t testingT) *SettingsServiceInterface {
	m := &SettingsServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
