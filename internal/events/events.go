package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeReservationCreated = "reservation_created"
	TypeContactSubmitted   = "contact_submitted"
)

// Message is the payload carried on the restaurant-events topic. Only the
// fields relevant to Type are filled in.
type Message struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservationId,omitempty"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Message       string    `json:"message,omitempty"`
	Date          string    `json:"date,omitempty"`
	Time          string    `json:"time,omitempty"`
	Guests        int       `json:"guests,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Key groups messages about the same reservation or sender on one partition.
func (m Message) Key() string {
	if m.ReservationID != "" {
		return m.ReservationID
	}
	return m.Email
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer Writer
}

func NewKafkaPublisher(writer Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", msg.Type, err)
	}
	if err := p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key()),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publish %s event: %w", msg.Type, err)
	}
	return nil
}

// Decode parses one topic message.
func Decode(m kafka.Message) (Message, error) {
	var msg Message
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return Message{}, fmt.Errorf("decode event: %w", err)
	}
	return msg, nil
}
