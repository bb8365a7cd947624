package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "warung-site/notify-svc/internal/api/http"
	"warung-site/notify-svc/internal/mocks"
	"warung-site/notify-svc/internal/service"
	"warung-site/notify-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingFeed struct {
	sent []storage.Notification
}

func (f *recordingFeed) Broadcast(n storage.Notification) {
	f.sent = append(f.sent, n)
}

func TestConsumer_BroadcastsDeliveredNotifications(t *testing.T) {
	notifier := mocks.NewNotifier(t)
	store := mocks.NewStoreInterface(t)
	feed := &recordingFeed{}

	store.On("MarkProcessed", mock.Anything, mock.Anything).Return(true, nil).Once()
	notifier.On("SendEmail", mock.Anything, "siti@example.com", "Re: Katering", mock.Anything).Return(nil).Once()
	sentAt := time.Date(2025, 11, 12, 19, 0, 0, 0, time.UTC)
	store.On("Record", mock.Anything, mock.MatchedBy(func(n storage.Notification) bool {
		return n.SentAt.Equal(sentAt)
	})).Return(nil).Once()

	consumer := service.NewConsumer(nil, notifier, store, feed)
	consumer.Now = func() time.Time { return sentAt }
	require.NoError(t, consumer.ProcessMessage(context.Background(), contactEvent()))

	require.Len(t, feed.sent, 1)
	assert.Equal(t, service.ChannelEmail, feed.sent[0].Channel)
	assert.Equal(t, "siti@example.com", feed.sent[0].Recipient)
	assert.Equal(t, sentAt, feed.sent[0].SentAt)
}

func TestHub_PushesToConnectedClients(t *testing.T) {
	hub := service.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(storage.Notification{Channel: service.ChannelWhatsApp, Recipient: "0812", Body: "halo"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got storage.Notification
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "halo", got.Body)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandler_getRecent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := storage.NewStore(client, "")
	ctx := context.Background()

	for _, body := range []string{"first", "second", "third"} {
		require.NoError(t, store.Record(ctx, storage.Notification{Channel: service.ChannelEmail, Body: body}))
	}

	router := mux.NewRouter()
	httpapi.NewHandler(store, nil).RegisterRoutes(router)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBodies []string
	}{
		{name: "default limit", query: "", wantStatus: http.StatusOK, wantBodies: []string{"third", "second", "first"}},
		{name: "explicit limit", query: "?limit=1", wantStatus: http.StatusOK, wantBodies: []string{"third"}},
		{name: "bad limit", query: "?limit=zero", wantStatus: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/notify/recent"+testCase.query, nil))

			assert.Equal(t, testCase.wantStatus, recorder.Code)
			if testCase.wantStatus != http.StatusOK {
				return
			}
			var items []storage.Notification
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&items))
			bodies := make([]string, 0, len(items))
			for _, n := range items {
				bodies = append(bodies, n.Body)
			}
			assert.Equal(t, testCase.wantBodies, bodies)
		})
	}
}
