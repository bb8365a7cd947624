package mocks

import (
	"context"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/events"
	"warung-site/storefront-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MenuServiceInterface struct {
	mock.Mock
}

func (_m *MenuServiceInterface) EffectiveMenu(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)
	items, _ := ret.Get(0).([]domain.MenuItem)
	return items, ret.Error(1)
}

func (_m *MenuServiceInterface) List(ctx context.Context, filter service.MenuFilter) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, filter)
	items, _ := ret.Get(0).([]domain.MenuItem)
	return items, ret.Error(1)
}

func NewMenuServiceInterface(t testingT) *MenuServiceInterface {
	m := &MenuServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type CartServiceInterface struct {
	mock.Mock
}

func (_m *CartServiceInterface) View(ctx context.Context) (service.CartView, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.CartView), ret.Error(1)
}

func (_m *CartServiceInterface) Add(ctx context.Context, itemID string) (service.CartView, error) {
	ret := _m.Called(ctx, itemID)
	return ret.Get(0).(service.CartView), ret.Error(1)
}

func (_m *CartServiceInterface) ChangeQuantity(ctx context.Context, itemID string, delta int) (service.CartView, error) {
	ret := _m.Called(ctx, itemID, delta)
	return ret.Get(0).(service.CartView), ret.Error(1)
}

func (_m *CartServiceInterface) Remove(ctx context.Context, itemID string) (service.CartView, error) {
	ret := _m.Called(ctx, itemID)
	return ret.Get(0).(service.CartView), ret.Error(1)
}

func (_m *CartServiceInterface) Checkout(ctx context.Context) (service.CheckoutResult, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.CheckoutResult), ret.Error(1)
}

func NewCartServiceInterface(t testingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ReservationServiceInterface struct {
	mock.Mock
}

func (_m *ReservationServiceInterface) Create(ctx context.Context, req service.ReservationRequest) (domain.Reservation, error) {
	ret := _m.Called(ctx, req)
	return ret.Get(0).(domain.Reservation), ret.Error(1)
}

func (_m *ReservationServiceInterface) Capacity(ctx context.Context) (service.CapacityIndicator, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.CapacityIndicator), ret.Error(1)
}

func NewReservationServiceInterface(t testingT) *ReservationServiceInterface {
	m := &ReservationServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type ContactServiceInterface struct {
	mock.Mock
}

func (_m *ContactServiceInterface) Submit(ctx context.Context, msg service.ContactMessage) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

func NewContactServiceInterface(t testingT) *ContactServiceInterface {
	m := &ContactServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type StatusServiceInterface struct {
	mock.Mock
}

func (_m *StatusServiceInterface) Status(ctx context.Context, now time.Time) (service.RestaurantStatus, error) {
	ret := _m.Called(ctx, now)
	return ret.Get(0).(service.RestaurantStatus), ret.Error(1)
}

func NewStatusServiceInterface(t testingT) *StatusServiceInterface {
	m := &StatusServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) Publish(ctx context.Context, msg events.Message) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
