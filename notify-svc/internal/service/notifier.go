package service

import (
	"context"
	"log"
)

// LogNotifier stands in for the WhatsApp and e-mail gateways and only logs
// what would have been sent.
type LogNotifier struct{}

func (LogNotifier) SendWhatsApp(ctx context.Context, phone, text string) error {
	log.Printf("[notify-svc] WhatsApp to %s: %s", phone, text)
	return nil
}

func (LogNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	log.Printf("[notify-svc] Email to %s (%s): %s", to, subject, body)
	return nil
}
