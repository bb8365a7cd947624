package events

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)

	err := publisher.Publish(context.Background(), Message{
		Type:          TypeReservationCreated,
		ReservationID: "R-1700000000000",
		Name:          "Budi Santoso",
		Guests:        4,
	})
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "R-1700000000000", string(writer.messages[0].Key))

	decoded, err := Decode(writer.messages[0])
	require.NoError(t, err)
	assert.Equal(t, TypeReservationCreated, decoded.Type)
	assert.Equal(t, 4, decoded.Guests)
	assert.False(t, decoded.Timestamp.IsZero())
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	publisher := NewKafkaPublisher(&recordingWriter{err: errors.New("broker down")})

	err := publisher.Publish(context.Background(), Message{Type: TypeContactSubmitted, Email: "a@b.co"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish contact_submitted event")
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(kafka.Message{Value: []byte("nope")})
	assert.Error(t, err)
}
