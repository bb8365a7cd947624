package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warung-site/internal/events"
	"warung-site/internal/validation"
)

type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,simpleemail"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

type ContactService struct {
	publisher EventPublisher
	Delay     time.Duration
	Now       func() time.Time
}

func NewContactService(publisher EventPublisher, delay time.Duration) *ContactService {
	return &ContactService{publisher: publisher, Delay: delay, Now: time.Now}
}

// Submit validates the message and queues it for the notifier. Nothing is
// written to shared storage.
func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if err := validation.Struct(msg); err != nil {
		return err
	}

	if err := sleepContext(ctx, s.Delay); err != nil {
		return err
	}

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Publish(ctx, events.Message{
		Type:      events.TypeContactSubmitted,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Timestamp: s.Now(),
	}); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}
