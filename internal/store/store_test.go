package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"warung-site/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func setupRedisBackend(t *testing.T) (*miniredis.Miniredis, *RedisBackend) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisBackend(client, "test")
}

func TestRedisBackend_NamespacedRoundTrip(t *testing.T) {
	mr, backend := setupRedisBackend(t)
	ctx := context.Background()

	_, found, err := backend.Get(ctx, KeyOrders)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, backend.Set(ctx, KeyOrders, `[]`))
	raw, err := mr.Get("test:orders")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)

	require.NoError(t, backend.Delete(ctx, KeyOrders))
	assert.False(t, mr.Exists("test:orders"))
}

func TestRedisBackend_ScopedValuesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	backend := NewScopedRedisBackend(client, "session", time.Minute)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, SessionKey("abc"), `{"username":"gemoy"}`))
	mr.FastForward(2 * time.Minute)

	_, found, err := backend.Get(ctx, SessionKey("abc"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisBackend_UpdateNoChangeSkipsWrite(t *testing.T) {
	mr, backend := setupRedisBackend(t)
	ctx := context.Background()

	err := backend.Update(ctx, KeyCart, func(current string, found bool) (string, error) {
		assert.False(t, found)
		return "", ErrNoChange
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("test:restaurantCart"))
}

func TestRead_FailSoft(t *testing.T) {
	mr, backend := setupRedisBackend(t)
	a := NewAccessor(backend)
	ctx := context.Background()
	fallback := domain.OperatingHours{OpenTime: "10:00", CloseTime: "22:00"}

	tests := []struct {
		name      string
		stored    *string
		wantFound bool
		want      domain.OperatingHours
	}{
		{name: "absent", stored: nil, wantFound: false, want: fallback},
		{name: "null", stored: ptr("null"), wantFound: false, want: fallback},
		{name: "garbage", stored: ptr("{not json"), wantFound: false, want: fallback},
		{
			name:      "valid",
			stored:    ptr(`{"openTime":"09:00","closeTime":"21:00"}`),
			wantFound: true,
			want:      domain.OperatingHours{OpenTime: "09:00", CloseTime: "21:00"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mr.Del("test:" + KeyOperatingHours)
			if testCase.stored != nil {
				require.NoError(t, mr.Set("test:"+KeyOperatingHours, *testCase.stored))
			}
			got, found, err := Read(ctx, a, KeyOperatingHours, fallback)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantFound, found)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestList_DropsMalformedElements(t *testing.T) {
	mr, backend := setupRedisBackend(t)
	keys := NewKeyspace(backend)
	ctx := context.Background()

	require.NoError(t, mr.Set("test:orders", `[{"id":"O-1","status":"ready","items":[]}, 42, {"id":"O-2","status":"weird"}]`))

	orders, err := keys.Orders.Get(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, domain.OrderReady, orders[0].Status)
	assert.Equal(t, domain.OrderPending, orders[1].Status)
	assert.NotNil(t, orders[1].Items)
}

func TestCart_DropsOnlyMalformedLines(t *testing.T) {
	mr, backend := setupRedisBackend(t)
	keys := NewKeyspace(backend)
	ctx := context.Background()

	require.NoError(t, mr.Set("test:"+KeyCart, `[
		{"id":"1","name":"Nasi Goreng Spesial","price":25000,"quantity":2},
		{"id":"2","name":5,"price":18000,"quantity":1},
		{"id":"5","name":"Es Teh Manis","price":"5000","quantity":0}
	]`))

	lines, err := keys.Cart.Get(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "1", lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)

	require.NoError(t, mr.Set("test:"+KeyCart, `{"not":"a list"}`))
	lines, err = keys.Cart.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestRedisBackend_UpdateSurvivesContention(t *testing.T) {
	_, backend := setupRedisBackend(t)
	keys := NewKeyspace(backend, WithCapacityBaseline(domain.Capacity{Total: 1000, Occupied: 0}))
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := keys.Capacity.Update(ctx, func(c domain.Capacity) (domain.Capacity, error) {
				c.Occupied++
				return c, nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	capacity, err := keys.Capacity.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers, capacity.Occupied)
}

func TestCollection_SeedIfAbsent(t *testing.T) {
	mr, backend := setupRedisBackend(t)
	keys := NewKeyspace(backend)
	ctx := context.Background()

	seeded, err := keys.OperatingHours.SeedIfAbsent(ctx, DefaultOperatingHours)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = keys.OperatingHours.SeedIfAbsent(ctx, domain.OperatingHours{OpenTime: "08:00", CloseTime: "20:00"})
	require.NoError(t, err)
	assert.False(t, seeded)

	hours, err := keys.OperatingHours.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultOperatingHours, hours)

	require.NoError(t, mr.Set("test:"+KeyRestaurantInfo, "not json"))
	seeded, err = keys.RestaurantInfo.SeedIfAbsent(ctx, domain.RestaurantInfo{Address: "Jl. Kabul"})
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestCollection_UpdateAppliesNormalization(t *testing.T) {
	_, backend := setupRedisBackend(t)
	keys := NewKeyspace(backend, WithCapacityBaseline(domain.Capacity{Total: 10, Occupied: 4}))
	ctx := context.Background()

	capacity, err := keys.Capacity.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Capacity{Total: 10, Occupied: 4}, capacity)

	updated, err := keys.Capacity.Update(ctx, func(c domain.Capacity) (domain.Capacity, error) {
		c.Occupied += 3
		return c, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Occupied)

	refused := errors.New("refused")
	_, err = keys.Capacity.Update(ctx, func(c domain.Capacity) (domain.Capacity, error) {
		return c, refused
	})
	assert.ErrorIs(t, err, refused)

	capacity, err = keys.Capacity.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, capacity.Occupied)
}

func TestPostgresBackend_Get(t *testing.T) {
	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	backend := NewPostgresBackend(mockDB, "site")

	rows := sqlmock.NewRows([]string{"value"}).AddRow(`{"address":"Jl. Kabul No. 123, Jakarta"}`)
	sqlMock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("site:restaurantInfo").
		WillReturnRows(rows)

	raw, found, err := backend.Get(context.Background(), KeyRestaurantInfo)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Contains(t, raw, "Jl. Kabul")

	sqlMock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("site:orders").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, found, err = backend.Get(context.Background(), KeyOrders)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresBackend_UpdateLocksRow(t *testing.T) {
	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	backend := NewPostgresBackend(mockDB, "")
	a := NewAccessor(backend)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery("SELECT value FROM kv_store WHERE key = \\$1 FOR UPDATE").
		WithArgs(KeyRestaurantCapacity).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"total":50,"occupied":35}`))
	sqlMock.ExpectExec("INSERT INTO kv_store").
		WithArgs(KeyRestaurantCapacity, `{"total":50,"occupied":39}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	got, err := Update(context.Background(), a, KeyRestaurantCapacity, DefaultCapacity, func(c domain.Capacity) (domain.Capacity, error) {
		c.Occupied += 4
		return c, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 39, got.Occupied)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresBackend_UpdateNoChangeRollsBack(t *testing.T) {
	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	backend := NewPostgresBackend(mockDB, "")

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs(KeyCart).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	sqlMock.ExpectRollback()

	err = backend.Update(context.Background(), KeyCart, func(string, bool) (string, error) {
		return "", ErrNoChange
	})
	require.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func ptr(s string) *string {
	return &s
}

func TestMongoBackend(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get found and missing", func(mt *mtest.T) {
		backend := NewMongoBackend(mt.Coll, "site")
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "site:orders"}, {Key: "value", Value: `[]`}}))
		raw, found, err := backend.Get(context.Background(), KeyOrders)
		require.NoError(mt, err)
		assert.True(mt, found)
		assert.Equal(mt, `[]`, raw)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, found, err = backend.Get(context.Background(), KeyCart)
		require.NoError(mt, err)
		assert.False(mt, found)
	})

	mt.Run("update swaps on previous value", func(mt *mtest.T) {
		backend := NewMongoBackend(mt.Coll, "")
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: KeyRestaurantCapacity}, {Key: "value", Value: `{"total":50,"occupied":35}`}}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		got, err := Update(context.Background(), NewAccessor(backend), KeyRestaurantCapacity, DefaultCapacity,
			func(c domain.Capacity) (domain.Capacity, error) {
				c.Occupied += 4
				return c, nil
			})
		require.NoError(mt, err)
		assert.Equal(mt, 39, got.Occupied)
	})

	mt.Run("update gives up after losing every race", func(mt *mtest.T) {
		backend := NewMongoBackend(mt.Coll, "")
		backend.MaxRetries = 2
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		for i := 0; i < backend.MaxRetries; i++ {
			mt.AddMockResponses(
				mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
					bson.D{{Key: "_id", Value: KeyOrders}, {Key: "value", Value: `[]`}}),
				mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			)
		}

		err := backend.Update(context.Background(), KeyOrders, func(string, bool) (string, error) {
			return `[{"id":"O-1"}]`, nil
		})
		assert.ErrorIs(mt, err, ErrConflict)
	})

	mt.Run("insert race retries", func(mt *mtest.T) {
		backend := NewMongoBackend(mt.Coll, "")
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: KeyOrders}, {Key: "value", Value: `[]`}}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		calls := 0
		err := backend.Update(context.Background(), KeyOrders, func(current string, found bool) (string, error) {
			calls++
			return `[]`, nil
		})
		require.NoError(mt, err)
		assert.Equal(mt, 2, calls)
	})
}
