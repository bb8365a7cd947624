package mocks

import (
	"context"

	"warung-site/notify-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type Notifier struct {
	mock.Mock
}

func (_m *Notifier) SendWhatsApp(ctx context.Context, phone, text string) error {
	return _m.Called(ctx, phone, text).Error(0)
}

func (_m *Notifier) SendEmail(ctx context.Context, to, subject, body string) error {
	return _m.Called(ctx, to, subject, body).Error(0)
}

func NewNotifier(t testingT) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type StoreInterface struct {
	mock.Mock
}

func (_m *StoreInterface) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ret := _m.Called(ctx, eventID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *StoreInterface) Record(ctx context.Context, n storage.Notification) error {
	return _m.Called(ctx, n).Error(0)
}

func NewStoreInterface(t testingT) *StoreInterface {
	m := &StoreInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MessageReader struct {
	mock.Mock
}

func (_m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(kafka.Message), ret.Error(1)
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
