package main

import (
	"warung-site/config"
	"warung-site/internal/store"
	httpapi "warung-site/payment-svc/internal/api/http"
	"warung-site/payment-svc/internal/service"
	"warung-site/payment-svc/internal/storage"
)

func main() {
	settings := config.MustLoad()

	rdb := config.MustInitRedis(settings)
	defer rdb.Close()

	keys := store.NewKeyspace(config.MustInitBackend(settings, rdb))
	countdowns := storage.NewCountdownStore(rdb, settings.StoreNamespace)
	qr := service.DefaultQRGenerator{BaseURL: settings.PaymentBaseURL}

	paymentSvc := service.NewPaymentService(keys, countdowns, qr, settings.PaymentWindow)
	handler := httpapi.NewHandler(paymentSvc)
	httpapi.StartServer(":"+settings.PortOr("8082"), httpapi.NewRouter(handler))
}
