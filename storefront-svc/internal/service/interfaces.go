package service

import (
	"context"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/events"
)

type MenuServiceInterface interface {
	EffectiveMenu(ctx context.Context) ([]domain.MenuItem, error)
	List(ctx context.Context, filter MenuFilter) ([]domain.MenuItem, error)
}

type CartServiceInterface interface {
	View(ctx context.Context) (CartView, error)
	Add(ctx context.Context, itemID string) (CartView, error)
	ChangeQuantity(ctx context.Context, itemID string, delta int) (CartView, error)
	Remove(ctx context.Context, itemID string) (CartView, error)
	Checkout(ctx context.Context) (CheckoutResult, error)
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, req ReservationRequest) (domain.Reservation, error)
	Capacity(ctx context.Context) (CapacityIndicator, error)
}

type ContactServiceInterface interface {
	Submit(ctx context.Context, msg ContactMessage) error
}

type StatusServiceInterface interface {
	Status(ctx context.Context, now time.Time) (RestaurantStatus, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, msg events.Message) error
}

var (
	_ MenuServiceInterface        = (*MenuService)(nil)
	_ CartServiceInterface        = (*CartService)(nil)
	_ ReservationServiceInterface = (*ReservationService)(nil)
	_ ContactServiceInterface     = (*ContactService)(nil)
	_ StatusServiceInterface      = (*StatusService)(nil)
	_ EventPublisher              = (*events.KafkaPublisher)(nil)
)
