package service

import (
	"context"

	"warung-site/internal/events"
	"warung-site/notify-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

// Notifier delivers confirmations to customers.
type Notifier interface {
	SendWhatsApp(ctx context.Context, phone, text string) error
	SendEmail(ctx context.Context, to, subject, body string) error
}

type StoreInterface interface {
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	Record(ctx context.Context, n storage.Notification) error
}

// Broadcaster pushes delivered notifications to live listeners.
type Broadcaster interface {
	Broadcast(n storage.Notification)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessMessage(ctx context.Context, msg events.Message) error
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ Notifier          = (*LogNotifier)(nil)
	_ Broadcaster       = (*Hub)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
