package service

import (
	"context"

	"warung-site/internal/domain"
	"warung-site/internal/store"
)

type Badges struct {
	Reservations  int `json:"reservations"`
	Orders        int `json:"orders"`
	Notifications int `json:"notifications"`
}

type Stats struct {
	TotalReservations int    `json:"totalReservations"`
	TotalOrders       int    `json:"totalOrders"`
	TotalCustomers    int    `json:"totalCustomers"`
	TotalRevenue      int64  `json:"totalRevenue"`
	RevenueLabel      string `json:"revenueLabel"`
}

type Dashboard struct {
	Seeded []string `json:"seeded"`
	Badges Badges   `json:"badges"`
	Stats  Stats    `json:"stats"`
}

func ComputeBadges(reservations []domain.Reservation, orders []domain.Order) Badges {
	return Badges{
		Reservations:  len(reservations),
		Orders:        len(orders),
		Notifications: len(reservations) + len(orders),
	}
}

// ComputeStats counts every record regardless of status. Customers are the
// distinct non-empty names across reservations and orders.
func ComputeStats(reservations []domain.Reservation, orders []domain.Order) Stats {
	customers := make(map[string]struct{})
	for _, r := range reservations {
		if r.Name != "" {
			customers[r.Name] = struct{}{}
		}
	}

	var revenue int64
	for _, o := range orders {
		if o.CustomerName != "" {
			customers[o.CustomerName] = struct{}{}
		}
		revenue += o.TotalPrice
	}

	return Stats{
		TotalReservations: len(reservations),
		TotalOrders:       len(orders),
		TotalCustomers:    len(customers),
		TotalRevenue:      revenue,
		RevenueLabel:      domain.FormatRupiah(revenue),
	}
}

type DashboardService struct {
	keys   *store.Keyspace
	seeder *Seeder
}

func NewDashboardService(keys *store.Keyspace, seeder *Seeder) *DashboardService {
	return &DashboardService{keys: keys, seeder: seeder}
}

// Load seeds any missing admin keys and summarizes what is stored.
func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	seeded, err := s.seeder.Seed(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	reservations, err := s.keys.Reservations.Get(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	orders, err := s.keys.Orders.Get(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Seeded: seeded,
		Badges: ComputeBadges(reservations, orders),
		Stats:  ComputeStats(reservations, orders),
	}, nil
}
