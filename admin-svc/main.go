package main

import (
	"log"

	httpapi "warung-site/admin-svc/internal/api/http"
	"warung-site/admin-svc/internal/service"
	"warung-site/config"
	"warung-site/internal/store"
)

func main() {
	settings := config.MustLoad()

	rdb := config.MustInitRedis(settings)
	defer rdb.Close()

	backend := config.MustInitBackend(settings, rdb)
	keys := store.NewKeyspace(backend, store.WithCapacityBaseline(settings.CapacityBaseline()))
	sessions := store.NewScopedRedisBackend(rdb, settings.StoreNamespace+":session", settings.SessionTTL)

	authSvc, err := service.NewAuthService(service.AuthConfig{
		Username:     settings.AdminUsername,
		Password:     settings.AdminPassword,
		PasswordHash: settings.AdminPasswordHash,
		Secret:       settings.SessionSecret,
		SessionTTL:   settings.SessionTTL,
	}, sessions, backend)
	if err != nil {
		log.Fatal("[admin-svc] ", err)
	}

	seeder := service.NewSeeder(keys)
	handler := httpapi.NewHandler(
		authSvc,
		service.NewDashboardService(keys, seeder),
		service.NewReservationService(keys),
		service.NewOrderService(keys),
		service.NewMenuService(keys),
		service.NewSettingsService(keys),
	)
	httpapi.StartServer(":"+settings.PortOr("8083"), httpapi.NewRouter(handler))
}
