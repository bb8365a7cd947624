package service

import (
	"context"
	"time"

	"warung-site/payment-svc/internal/storage"
)

type PaymentServiceInterface interface {
	Summary(ctx context.Context) (SummaryView, error)
	StartCountdown(ctx context.Context) (CountdownView, error)
	Countdown(ctx context.Context, id string) (CountdownView, error)
	Pay(ctx context.Context, id string, req PayRequest) (Receipt, error)
	QRCode(ctx context.Context) ([]byte, error)
}

type CountdownStore interface {
	Start(ctx context.Context, id string, window time.Duration) error
	Remaining(ctx context.Context, id string) (time.Duration, bool, error)
	Consume(ctx context.Context, id string) (bool, error)
}

var (
	_ PaymentServiceInterface = (*PaymentService)(nil)
	_ CountdownStore          = (*storage.CountdownStore)(nil)
	_ QRGenerator             = DefaultQRGenerator{}
)
