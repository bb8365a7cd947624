package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ProcessedTTL is how long an event id is remembered for redelivery checks.
	ProcessedTTL = 7 * 24 * time.Hour
	// LogLimit caps the delivered-notification log.
	LogLimit = 100
)

type Notification struct {
	EventType string    `json:"eventType"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sentAt"`
}

type Store struct {
	rdb       *redis.Client
	namespace string
}

func NewStore(rdb *redis.Client, namespace string) *Store {
	return &Store{rdb: rdb, namespace: namespace}
}

func (s *Store) key(parts string) string {
	if s.namespace == "" {
		return "notify:" + parts
	}
	return s.namespace + ":notify:" + parts
}

func (s *Store) LogKey() string {
	return s.key("log")
}

// MarkProcessed reports true the first time eventID is seen.
func (s *Store) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	fresh, err := s.rdb.SetNX(ctx, s.key("processed:"+eventID), 1, ProcessedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("mark event %s: %w", eventID, err)
	}
	return fresh, nil
}

// Record prepends n to the notification log, keeping the newest LogLimit entries.
func (s *Store) Record(ctx context.Context, n Notification) error {
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.LogKey(), payload)
		pipe.LTrim(ctx, s.LogKey(), 0, LogLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record notification: %w", err)
	}
	return nil
}

// Recent returns up to limit notifications, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Notification, error) {
	raw, err := s.rdb.LRange(ctx, s.LogKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read notification log: %w", err)
	}
	out := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
