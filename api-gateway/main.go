package main

import (
	"log"
	"net/http"
	"time"

	"warung-site/api-gateway/internal/gateway"
	"warung-site/config"

	"github.com/rs/cors"
)

func main() {
	settings := config.MustLoad()

	gw := gateway.NewGateway(gateway.Config{
		StorefrontSvcURL: settings.StorefrontURL,
		PaymentSvcURL:    settings.PaymentURL,
		AdminSvcURL:      settings.AdminURL,
		NotifySvcURL:     settings.NotifyURL,
		StaticDir:        settings.StaticDir,
	}, &http.Client{Timeout: 30 * time.Second})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	addr := ":" + settings.PortOr("8080")
	log.Printf("API Gateway starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
