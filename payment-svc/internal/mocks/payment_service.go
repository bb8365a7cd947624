package mocks

import (
	"context"

	"warung-site/payment-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type PaymentServiceInterface struct {
	mock.Mock
}

func (_m *PaymentServiceInterface) Summary(ctx context.Context) (service.SummaryView, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.SummaryView), ret.Error(1)
}

func (_m *PaymentServiceInterface) StartCountdown(ctx context.Context) (service.CountdownView, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(service.CountdownView), ret.Error(1)
}

func (_m *PaymentServiceInterface) Countdown(ctx context.Context, id string) (service.CountdownView, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(service.CountdownView), ret.Error(1)
}

func (_m *PaymentServiceInterface) Pay(ctx context.Context, id string, req service.PayRequest) (service.Receipt, error) {
	ret := _m.Called(ctx, id, req)
	return ret.Get(0).(service.Receipt), ret.Error(1)
}

func (_m *PaymentServiceInterface) QRCode(ctx context.Context) ([]byte, error) {
	ret := _m.Called(ctx)
	png, _ := ret.Get(0).([]byte)
	return png, ret.Error(1)
}

func NewPaymentServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentServiceInterface {
	m := &PaymentServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
