package service

import (
	"context"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/store"
)

var DefaultRestaurantInfo = domain.RestaurantInfo{
	Address: "Jl. Kabul No. 123, Jakarta",
	Phone:   "(021) 1234-5678",
}

// Seeder fills the admin keys with demo data the first time the dashboard
// is opened. Each key is checked on its own.
type Seeder struct {
	keys *store.Keyspace
	Now  func() time.Time
}

func NewSeeder(keys *store.Keyspace) *Seeder {
	return &Seeder{keys: keys, Now: time.Now}
}

// Seed returns the keys it wrote.
func (s *Seeder) Seed(ctx context.Context) ([]string, error) {
	now := s.Now().UnixMilli()
	seeded := []string{}

	steps := []struct {
		key  string
		seed func() (bool, error)
	}{
		{store.KeyReservations, func() (bool, error) {
			return s.keys.Reservations.SeedIfAbsent(ctx, seedReservations(now))
		}},
		{store.KeyOrders, func() (bool, error) {
			return s.keys.Orders.SeedIfAbsent(ctx, seedOrders())
		}},
		{store.KeyAdminMenuItems, func() (bool, error) {
			return s.keys.AdminMenuItems.SeedIfAbsent(ctx, seedMenuItems())
		}},
		{store.KeyOperatingHours, func() (bool, error) {
			return s.keys.OperatingHours.SeedIfAbsent(ctx, store.DefaultOperatingHours)
		}},
		{store.KeyRestaurantInfo, func() (bool, error) {
			return s.keys.RestaurantInfo.SeedIfAbsent(ctx, DefaultRestaurantInfo)
		}},
	}

	for _, step := range steps {
		wrote, err := step.seed()
		if err != nil {
			return seeded, err
		}
		if wrote {
			seeded = append(seeded, step.key)
		}
	}
	return seeded, nil
}

func seedReservations(now int64) []domain.Reservation {
	return []domain.Reservation{
		{ID: "R-1001", Name: "Budi Santoso", Date: "2025-11-12", Time: "19:00", Guests: 4,
			Phone: "081234567890", Status: domain.ReservationPending, CreatedAt: now - 86400000},
		{ID: "R-1002", Name: "Siti Aminah", Date: "2025-11-12", Time: "12:00", Guests: 2,
			Phone: "081298765432", Status: domain.ReservationConfirmed, CreatedAt: now - 43200000},
	}
}

func seedOrders() []domain.Order {
	return []domain.Order{
		{ID: "O-2001", CustomerName: "Andi", TotalPrice: 85000, PaymentMethod: "Cash",
			Status: domain.OrderPending, Date: "2025-11-11",
			Items: []domain.OrderItem{{Name: "Nasi Goreng", Qty: 1, Price: 35000}, {Name: "Es Teh", Qty: 2, Price: 25000}}},
		{ID: "O-2002", CustomerName: "Dewi", TotalPrice: 120000, PaymentMethod: "QRIS",
			Status: domain.OrderProcessing, Date: "2025-11-11",
			Items: []domain.OrderItem{{Name: "Sate Ayam", Qty: 2, Price: 60000}}},
	}
}

func seedMenuItems() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: "M-1", Name: "Nasi Goreng", Category: domain.CategoryMainCourse, Price: 35000, Description: "Nasi goreng spesial"},
		{ID: "M-2", Name: "Sate Ayam", Category: domain.CategoryMainCourse, Price: 60000, Description: "Sate ayam bumbu kacang"},
		{ID: "M-3", Name: "Es Teh", Category: domain.CategoryBeverage, Price: 25000, Description: "Es teh manis"},
	}
}
