package service

import (
	"context"

	"warung-site/internal/domain"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Authenticate(ctx context.Context, token string) (domain.AdminSession, error)
	Logout(ctx context.Context, token string) error
}

type DashboardServiceInterface interface {
	Load(ctx context.Context) (Dashboard, error)
}

type ReservationServiceInterface interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Reservation, error)
	Get(ctx context.Context, id string) (domain.Reservation, error)
	Confirm(ctx context.Context, id string) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id string) ([]domain.Reservation, error)
}

type OrderServiceInterface interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	Advance(ctx context.Context, id string) ([]domain.Order, error)
	Cancel(ctx context.Context, id string) ([]domain.Order, error)
}

type MenuServiceInterface interface {
	List(ctx context.Context, category string) ([]domain.MenuItem, error)
	Create(ctx context.Context, req NewMenuItem) (domain.MenuItem, error)
	Rename(ctx context.Context, id, name string) ([]domain.MenuItem, error)
	Delete(ctx context.Context, id string) ([]domain.MenuItem, error)
}

type SettingsServiceInterface interface {
	Hours(ctx context.Context) (domain.OperatingHours, error)
	Info(ctx context.Context) (domain.RestaurantInfo, error)
	UpdateHours(ctx context.Context, hours domain.OperatingHours) (domain.OperatingHours, error)
	UpdateInfo(ctx context.Context, info domain.RestaurantInfo) (domain.RestaurantInfo, error)
}

var (
	_ AuthServiceInterface        = (*AuthService)(nil)
	_ DashboardServiceInterface   = (*DashboardService)(nil)
	_ ReservationServiceInterface = (*ReservationService)(nil)
	_ OrderServiceInterface       = (*OrderService)(nil)
	_ MenuServiceInterface        = (*MenuService)(nil)
	_ SettingsServiceInterface    = (*SettingsService)(nil)
)
