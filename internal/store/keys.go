package store

import (
	"warung-site/internal/domain"
)

// Storage keys shared by the storefront, payment and admin pages. The names
// are part of the protocol and must not change.
const (
	KeyReservations       = "reservations"
	KeyOrders             = "orders"
	KeyAdminMenuItems     = "adminMenuItems"
	KeyOperatingHours     = "operatingHours"
	KeyRestaurantInfo     = "restaurantInfo"
	KeyCart               = "restaurantCart"
	KeyPaymentSummary     = "paymentSummary"
	KeyRestaurantCapacity = "restaurantCapacity"

	// KeyAdminSessionPrefix is followed by the session token.
	KeyAdminSessionPrefix = "adminSession:"
)

var (
	DefaultOperatingHours = domain.OperatingHours{OpenTime: "10:00", CloseTime: "22:00"}
	DefaultCapacity       = domain.Capacity{Total: 50, Occupied: 35}
)

// Keyspace groups the typed collections every page works against.
type Keyspace struct {
	Accessor *Accessor

	Reservations   *Collection[[]domain.Reservation]
	Orders         *Collection[[]domain.Order]
	AdminMenuItems *Collection[[]domain.MenuItem]
	OperatingHours *Collection[domain.OperatingHours]
	RestaurantInfo *Collection[domain.RestaurantInfo]
	Cart           *Collection[[]domain.CartLine]
	PaymentSummary *Collection[domain.PaymentSummary]
	Capacity       *Collection[domain.Capacity]
}

type KeyspaceOption func(*keyspaceConfig)

type keyspaceConfig struct {
	capacity domain.Capacity
}

// WithCapacityBaseline sets the seat counter used when restaurantCapacity
// has never been written.
func WithCapacityBaseline(c domain.Capacity) KeyspaceOption {
	return func(cfg *keyspaceConfig) {
		cfg.capacity = c
	}
}

func NewKeyspace(backend Backend, opts ...KeyspaceOption) *Keyspace {
	cfg := keyspaceConfig{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := NewAccessor(backend)
	capacity := cfg.capacity

	return &Keyspace{
		Accessor: a,
		Reservations: NewList(a, KeyReservations, func(_ int, r domain.Reservation) domain.Reservation {
			return domain.NormalizeReservation(r)
		}),
		Orders: NewList(a, KeyOrders, func(_ int, o domain.Order) domain.Order {
			return domain.NormalizeOrder(o)
		}),
		AdminMenuItems: NewList[domain.MenuItem](a, KeyAdminMenuItems, nil),
		OperatingHours: NewDocument(a, KeyOperatingHours,
			func() domain.OperatingHours { return DefaultOperatingHours },
			normalizeHours,
		),
		RestaurantInfo: NewDocument[domain.RestaurantInfo](a, KeyRestaurantInfo,
			func() domain.RestaurantInfo { return domain.RestaurantInfo{} },
			nil,
		),
		Cart: NewList[domain.CartLine](a, KeyCart, nil).filteredBy(domain.NormalizeCart),
		PaymentSummary: NewDocument(a, KeyPaymentSummary,
			func() domain.PaymentSummary { return domain.PaymentSummary{} },
			domain.NormalizePaymentSummary,
		),
		Capacity: NewDocument(a, KeyRestaurantCapacity,
			func() domain.Capacity { return capacity },
			func(c domain.Capacity) domain.Capacity {
				if c.Total <= 0 {
					c.Total = capacity.Total
				}
				if c.Occupied < 0 {
					c.Occupied = 0
				}
				return c
			},
		),
	}
}

// SessionKey is the storage key of one admin session.
func SessionKey(token string) string {
	return KeyAdminSessionPrefix + token
}

func normalizeHours(h domain.OperatingHours) domain.OperatingHours {
	if h.OpenTime == "" {
		h.OpenTime = DefaultOperatingHours.OpenTime
	}
	if h.CloseTime == "" {
		h.CloseTime = DefaultOperatingHours.CloseTime
	}
	return h
}
