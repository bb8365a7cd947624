package main

import (
	"log"

	"warung-site/config"
	"warung-site/internal/events"
	"warung-site/internal/store"
	httpapi "warung-site/storefront-svc/internal/api/http"
	"warung-site/storefront-svc/internal/service"
)

func main() {
	settings := config.MustLoad()

	rdb := config.MustInitRedis(settings)
	defer rdb.Close()

	backend := config.MustInitBackend(settings, rdb)
	keys := store.NewKeyspace(backend, store.WithCapacityBaseline(settings.CapacityBaseline()))

	writer := config.NewKafkaWriter(settings, settings.EventsTopic)
	defer writer.Close()
	publisher := events.NewKafkaPublisher(writer)

	feePolicy, err := service.ParseFeePolicy(settings.FeePolicy)
	if err != nil {
		log.Fatal("[storefront-svc] ", err)
	}

	menuSvc := service.NewMenuService(keys)
	cartSvc := service.NewCartService(keys, menuSvc, feePolicy)
	reservationSvc := service.NewReservationService(keys, publisher, settings.ReservationDelay)
	contactSvc := service.NewContactService(publisher, settings.ContactDelay)
	statusSvc := service.NewStatusService(keys, reservationSvc)

	handler := httpapi.NewHandler(menuSvc, cartSvc, reservationSvc, contactSvc, statusSvc)
	httpapi.StartServer(":"+settings.PortOr("8081"), httpapi.NewRouter(handler))
}
