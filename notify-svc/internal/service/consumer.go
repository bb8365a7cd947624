package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"warung-site/internal/events"
	"warung-site/notify-svc/internal/storage"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"

	contactReplySubject = "Pesan Anda telah kami terima"
)

type Consumer struct {
	Reader   MessageReader
	Notifier Notifier
	Store    StoreInterface
	// Feed is optional.
	Feed Broadcaster
	Now  func() time.Time
}

func NewConsumer(reader MessageReader, notifier Notifier, store StoreInterface, feed Broadcaster) *Consumer {
	return &Consumer{
		Reader:   reader,
		Notifier: notifier,
		Store:    store,
		Feed:     feed,
		Now:      time.Now,
	}
}

// Start reads the events topic until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Notification Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Notification consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		msg, err := events.Decode(message)
		if err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if err := c.ProcessMessage(ctx, msg); err != nil {
			log.Printf("Error processing %s event: %v", msg.Type, err)
		}
	}
}

// EventID identifies a message for redelivery checks.
func EventID(msg events.Message) string {
	return msg.Type + ":" + msg.Key() + ":" + strconv.FormatInt(msg.Timestamp.UnixNano(), 10)
}

// ProcessMessage sends the confirmation for one event. Unknown types and
// events seen before are skipped.
func (c *Consumer) ProcessMessage(ctx context.Context, msg events.Message) error {
	var n storage.Notification
	switch msg.Type {
	case events.TypeReservationCreated:
		n = reservationConfirmation(msg)
	case events.TypeContactSubmitted:
		n = contactAcknowledgement(msg)
	default:
		return nil
	}

	fresh, err := c.Store.MarkProcessed(ctx, EventID(msg))
	if err != nil {
		return err
	}
	if !fresh {
		log.Printf("Skipping duplicate %s event for %s", msg.Type, msg.Key())
		return nil
	}

	if err := c.send(ctx, n); err != nil {
		return fmt.Errorf("send %s notification: %w", n.Channel, err)
	}
	n.SentAt = c.now()
	if err := c.Store.Record(ctx, n); err != nil {
		return err
	}
	if c.Feed != nil {
		c.Feed.Broadcast(n)
	}

	log.Printf("Successfully processed %s event for %s", msg.Type, msg.Key())
	return nil
}

func (c *Consumer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Consumer) send(ctx context.Context, n storage.Notification) error {
	switch n.Channel {
	case ChannelWhatsApp:
		return c.Notifier.SendWhatsApp(ctx, n.Recipient, n.Body)
	case ChannelEmail:
		return c.Notifier.SendEmail(ctx, n.Recipient, n.Subject, n.Body)
	}
	return errors.New("unknown channel " + n.Channel)
}

func reservationConfirmation(msg events.Message) storage.Notification {
	return storage.Notification{
		EventType: msg.Type,
		Channel:   ChannelWhatsApp,
		Recipient: msg.Phone,
		Body: fmt.Sprintf(
			"Halo %s, reservasi %s untuk %d orang pada %s pukul %s telah kami terima. Kami akan menghubungi Anda untuk konfirmasi.",
			msg.Name, msg.ReservationID, msg.Guests, msg.Date, msg.Time,
		),
	}
}

func contactAcknowledgement(msg events.Message) storage.Notification {
	subject := contactReplySubject
	if msg.Subject != "" {
		subject = "Re: " + msg.Subject
	}
	return storage.Notification{
		EventType: msg.Type,
		Channel:   ChannelEmail,
		Recipient: msg.Email,
		Subject:   subject,
		Body:      fmt.Sprintf("Halo %s, pesan Anda telah terkirim! Kami akan segera merespons.", msg.Name),
	}
}
