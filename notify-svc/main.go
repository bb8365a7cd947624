package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"warung-site/config"
	httpapi "warung-site/notify-svc/internal/api/http"
	"warung-site/notify-svc/internal/service"
	"warung-site/notify-svc/internal/storage"
)

func main() {
	settings := config.MustLoad()

	rdb := config.MustInitRedis(settings)
	defer rdb.Close()

	reader := config.NewKafkaReader(settings, settings.EventsTopic, settings.NotifyGroup)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewStore(rdb, settings.StoreNamespace)
	hub := service.NewHub()
	go hub.Run(ctx)

	handler := httpapi.NewHandler(store, hub.ServeWS)
	go httpapi.StartServer(":"+settings.PortOr("8084"), httpapi.NewRouter(handler))

	consumer := service.NewConsumer(reader, service.LogNotifier{}, store, hub)
	log.Printf("[notify-svc] consuming %s as %s", settings.EventsTopic, settings.NotifyGroup)
	consumer.Start(ctx)
}
