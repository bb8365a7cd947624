package tests

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"warung-site/admin-svc/internal/service"
	"warung-site/internal/domain"
	"warung-site/internal/store"
	"warung-site/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupKeyspace(t *testing.T) (*miniredis.Miniredis, *redis.Client, *store.Keyspace) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client, store.NewKeyspace(store.NewRedisBackend(client, ""))
}

func seededKeyspace(t *testing.T) (*miniredis.Miniredis, *store.Keyspace) {
	t.Helper()
	mr, _, keys := setupKeyspace(t)
	_, err := service.NewSeeder(keys).Seed(context.Background())
	require.NoError(t, err)
	return mr, keys
}

func TestDashboardService_SeedsEmptyStore(t *testing.T) {
	_, _, keys := setupKeyspace(t)
	svc := service.NewDashboardService(keys, service.NewSeeder(keys))
	ctx := context.Background()

	dashboard, err := svc.Load(ctx)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		store.KeyReservations,
		store.KeyOrders,
		store.KeyAdminMenuItems,
		store.KeyOperatingHours,
		store.KeyRestaurantInfo,
	}, dashboard.Seeded)
	assert.Equal(t, service.Badges{Reservations: 2, Orders: 2, Notifications: 4}, dashboard.Badges)
	assert.Equal(t, 4, dashboard.Stats.TotalCustomers)
	assert.Equal(t, int64(205000), dashboard.Stats.TotalRevenue)
	assert.Equal(t, "Rp 205.000", dashboard.Stats.RevenueLabel)

	menu, err := keys.AdminMenuItems.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, 3)

	info, err := keys.RestaurantInfo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.DefaultRestaurantInfo, info)

	dashboard, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, dashboard.Seeded)
	assert.Equal(t, 4, dashboard.Badges.Notifications)
}

func TestSeeder_KeysAreIndependent(t *testing.T) {
	mr, _, keys := setupKeyspace(t)
	require.NoError(t, mr.Set(store.KeyOrders, `[]`))
	require.NoError(t, mr.Set(store.KeyReservations, `{broken`))

	seeded, err := service.NewSeeder(keys).Seed(context.Background())
	require.NoError(t, err)

	assert.Contains(t, seeded, store.KeyReservations)
	assert.NotContains(t, seeded, store.KeyOrders)

	raw, err := mr.Get(store.KeyOrders)
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
}

func TestComputeStats(t *testing.T) {
	reservations := []domain.Reservation{{Name: "Budi"}, {Name: ""}, {Name: "Andi"}}
	orders := []domain.Order{
		{CustomerName: "Andi", TotalPrice: 50000},
		{CustomerName: "", TotalPrice: 25000},
	}

	stats := service.ComputeStats(reservations, orders)

	assert.Equal(t, 3, stats.TotalReservations)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalCustomers)
	assert.Equal(t, int64(75000), stats.TotalRevenue)
	assert.Equal(t, "Rp 75.000", stats.RevenueLabel)

	assert.Equal(t, service.Badges{Reservations: 3, Orders: 2, Notifications: 5}, service.ComputeBadges(reservations, orders))
}

func TestReservationService_List(t *testing.T) {
	_, keys := seededKeyspace(t)
	svc := service.NewReservationService(keys)

	tests := []struct {
		name    string
		filter  service.ListFilter
		wantIDs []string
	}{
		{name: "everything", filter: service.ListFilter{}, wantIDs: []string{"R-1001", "R-1002"}},
		{name: "all keyword", filter: service.ListFilter{Status: "all"}, wantIDs: []string{"R-1001", "R-1002"}},
		{name: "pending only", filter: service.ListFilter{Status: "pending"}, wantIDs: []string{"R-1001"}},
		{name: "search by name", filter: service.ListFilter{Query: "SITI"}, wantIDs: []string{"R-1002"}},
		{name: "search by phone", filter: service.ListFilter{Query: "0812345"}, wantIDs: []string{"R-1001"}},
		{name: "status and search", filter: service.ListFilter{Status: "cancelled", Query: "budi"}, wantIDs: []string{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			list, err := svc.List(context.Background(), testCase.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(list))
			for _, r := range list {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, testCase.wantIDs, ids)
		})
	}
}

func TestReservationService_Transitions(t *testing.T) {
	_, keys := seededKeyspace(t)
	svc := service.NewReservationService(keys)
	ctx := context.Background()

	list, err := svc.Confirm(ctx, "R-1001")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, list[0].Status)

	list, err = svc.Cancel(ctx, "R-1002")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, list[1].Status)

	list, err = svc.Confirm(ctx, "R-1002")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, list[1].Status)

	list, err = svc.Cancel(ctx, "R-9999")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	stored, err := svc.Get(ctx, "R-1001")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, stored.Status)

	_, err = svc.Get(ctx, "R-9999")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderService_AdvanceFollowsFlow(t *testing.T) {
	_, keys := seededKeyspace(t)
	svc := service.NewOrderService(keys)
	ctx := context.Background()

	want := []domain.OrderStatus{
		domain.OrderProcessing,
		domain.OrderReady,
		domain.OrderDelivered,
		domain.OrderCompleted,
		domain.OrderCompleted,
	}
	for _, status := range want {
		list, err := svc.Advance(ctx, "O-2001")
		require.NoError(t, err)
		assert.Equal(t, status, list[0].Status)
	}

	list, err := svc.Cancel(ctx, "O-2001")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, list[0].Status)

	list, err = svc.Advance(ctx, "O-2001")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, list[0].Status)

	list, err = svc.Advance(ctx, "O-404")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderProcessing, list[1].Status)
}

func TestOrderService_ListAndGet(t *testing.T) {
	_, keys := seededKeyspace(t)
	svc := service.NewOrderService(keys)
	ctx := context.Background()

	list, err := svc.List(ctx, service.ListFilter{Query: "dewi"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "O-2002", list[0].ID)

	list, err = svc.List(ctx, service.ListFilter{Status: "processing"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	order, err := svc.Get(ctx, "O-2001")
	require.NoError(t, err)
	assert.Len(t, order.Items, 2)

	_, err = svc.Get(ctx, "O-1")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestMenuService_Lifecycle(t *testing.T) {
	_, keys := seededKeyspace(t)
	svc := service.NewMenuService(keys)
	svc.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	ctx := context.Background()

	beverages, err := svc.List(ctx, "beverage")
	require.NoError(t, err)
	require.Len(t, beverages, 1)
	assert.Equal(t, "M-3", beverages[0].ID)

	item, err := svc.Create(ctx, service.NewMenuItem{
		Name:     "  Es Jeruk ",
		Category: domain.CategoryBeverage,
		Price:    json.RawMessage(`"15000"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "M-1700000000000", item.ID)
	assert.Equal(t, "Es Jeruk", item.Name)
	assert.Equal(t, int64(15000), item.Price)

	second, err := svc.Create(ctx, service.NewMenuItem{Name: "Kopi", Category: domain.CategoryBeverage, Price: json.RawMessage(`"abc"`)})
	require.NoError(t, err)
	assert.Equal(t, "M-1700000000000-2", second.ID)

	_, err = svc.Create(ctx, service.NewMenuItem{Name: "   ", Category: domain.CategoryBeverage})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = svc.Create(ctx, service.NewMenuItem{Name: "Pizza", Category: "pizza"})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	all, err := svc.List(ctx, "all")
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, int64(0), all[4].Price)

	items, err := svc.Rename(ctx, "M-1", "  ")
	require.NoError(t, err)
	assert.Equal(t, "Nasi Goreng", items[0].Name)

	items, err = svc.Rename(ctx, "M-1", "Nasi Goreng Kampung")
	require.NoError(t, err)
	assert.Equal(t, "Nasi Goreng Kampung", items[0].Name)

	items, err = svc.Delete(ctx, "M-2")
	require.NoError(t, err)
	assert.Len(t, items, 4)

	items, err = svc.Delete(ctx, "M-2")
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestMenuService_CreateConcurrentIDsAreUnique(t *testing.T) {
	_, _, keys := setupKeyspace(t)
	svc := service.NewMenuService(keys)
	svc.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	ctx := context.Background()

	const creators = 20
	var wg sync.WaitGroup
	errs := make(chan error, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, service.NewMenuItem{Name: "Es Jeruk", Category: domain.CategoryBeverage})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, "all")
	require.NoError(t, err)
	require.Len(t, items, creators)
	ids := make(map[string]bool)
	for _, item := range items {
		ids[item.ID] = true
	}
	assert.Len(t, ids, creators)

	items, err = svc.Delete(ctx, "M-1700000000000")
	require.NoError(t, err)
	assert.Len(t, items, creators-1)
}

func TestSettingsService_UpdateHoursDefaults(t *testing.T) {
	_, _, keys := setupKeyspace(t)
	svc := service.NewSettingsService(keys)
	ctx := context.Background()

	saved, err := svc.UpdateHours(ctx, domain.OperatingHours{OpenTime: "08:00"})
	require.NoError(t, err)
	assert.Equal(t, domain.OperatingHours{OpenTime: "08:00", CloseTime: "22:00"}, saved)

	hours, err := svc.Hours(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, hours)

	info := domain.RestaurantInfo{Address: "Jl. Sabang 7", Phone: "021-555"}
	_, err = svc.UpdateInfo(ctx, info)
	require.NoError(t, err)

	stored, err := svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, info, stored)
}

func setupAuth(t *testing.T) (*miniredis.Miniredis, *service.AuthService) {
	t.Helper()
	mr, client, _ := setupKeyspace(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("gemoy123"), bcrypt.MinCost)
	require.NoError(t, err)

	auth, err := service.NewAuthService(service.AuthConfig{
		Username:     "gemoy",
		PasswordHash: string(hash),
		Secret:       "test-secret",
		SessionTTL:   time.Hour,
	},
		store.NewScopedRedisBackend(client, "session", time.Hour),
		store.NewRedisBackend(client, ""),
	)
	require.NoError(t, err)
	return mr, auth
}

func TestAuthService_Login(t *testing.T) {
	_, auth := setupAuth(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     service.LoginRequest
		wantErr error
	}{
		{name: "valid", req: service.LoginRequest{Username: "gemoy", Password: "gemoy123"}},
		{name: "surrounding spaces", req: service.LoginRequest{Username: " gemoy ", Password: " gemoy123\t"}},
		{name: "wrong password", req: service.LoginRequest{Username: "gemoy", Password: "gemoy"}, wantErr: service.ErrInvalidCredentials},
		{name: "wrong user", req: service.LoginRequest{Username: "admin", Password: "gemoy123"}, wantErr: service.ErrInvalidCredentials},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := auth.Login(ctx, testCase.req)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "gemoy", result.Username)

			session, err := auth.Authenticate(ctx, result.Token)
			require.NoError(t, err)
			assert.Equal(t, "gemoy", session.Username)
		})
	}
}

func TestAuthService_SessionScopes(t *testing.T) {
	mr, auth := setupAuth(t)
	ctx := context.Background()

	shortLived, err := auth.Login(ctx, service.LoginRequest{Username: "gemoy", Password: "gemoy123"})
	require.NoError(t, err)
	remembered, err := auth.Login(ctx, service.LoginRequest{Username: "gemoy", Password: "gemoy123", Remember: true})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = auth.Authenticate(ctx, shortLived.Token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = auth.Authenticate(ctx, remembered.Token)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, remembered.Token))
	_, err = auth.Authenticate(ctx, remembered.Token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthService_RejectsForeignTokens(t *testing.T) {
	_, auth := setupAuth(t)
	ctx := context.Background()

	result, err := auth.Login(ctx, service.LoginRequest{Username: "gemoy", Password: "gemoy123"})
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", result.Token + "x"} {
		_, err := auth.Authenticate(ctx, token)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	}
}
