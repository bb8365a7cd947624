package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/store"
	"warung-site/internal/validation"

	"github.com/google/uuid"
)

var ErrPaymentExpired = errors.New("payment window has expired")

const (
	DefaultPaymentWindow = 900 * time.Second
	WarningThreshold     = 120 * time.Second
	ExpiredLabel         = "Waktu Habis"
)

type SummaryView struct {
	domain.PaymentSummary
	SubtotalLabel    string `json:"subtotalLabel"`
	TaxLabel         string `json:"taxLabel"`
	DeliveryFeeLabel string `json:"deliveryFeeLabel"`
	TotalLabel       string `json:"totalLabel"`
}

type CountdownView struct {
	ID               string `json:"id"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Display          string `json:"display"`
	Warning          bool   `json:"warning"`
	Expired          bool   `json:"expired"`
}

type PayRequest struct {
	Method string `json:"method" validate:"required"`
}

type Receipt struct {
	CountdownID string    `json:"countdownId"`
	Method      string    `json:"method"`
	Amount      int64     `json:"amount"`
	AmountLabel string    `json:"amountLabel"`
	Status      string    `json:"status"`
	PaidAt      time.Time `json:"paidAt"`
}

type PaymentService struct {
	keys       *store.Keyspace
	countdowns CountdownStore
	qr         QRGenerator
	Window     time.Duration
	Now        func() time.Time
}

func NewPaymentService(keys *store.Keyspace, countdowns CountdownStore, qr QRGenerator, window time.Duration) *PaymentService {
	if window <= 0 {
		window = DefaultPaymentWindow
	}
	return &PaymentService{keys: keys, countdowns: countdowns, qr: qr, Window: window, Now: time.Now}
}

func NewSummaryView(s domain.PaymentSummary) SummaryView {
	return SummaryView{
		PaymentSummary:   s,
		SubtotalLabel:    domain.FormatRupiah(s.Subtotal),
		TaxLabel:         domain.FormatRupiah(s.Tax),
		DeliveryFeeLabel: domain.FormatRupiah(s.DeliveryFee),
		TotalLabel:       domain.FormatRupiah(s.Total),
	}
}

// NewCountdownView renders the time left as MM:SS.
func NewCountdownView(id string, remaining time.Duration) CountdownView {
	seconds := int(remaining.Round(time.Second) / time.Second)
	if seconds <= 0 {
		return CountdownView{ID: id, Display: ExpiredLabel, Warning: true, Expired: true}
	}
	return CountdownView{
		ID:               id,
		RemainingSeconds: seconds,
		Display:          fmt.Sprintf("%02d:%02d", seconds/60, seconds%60),
		Warning:          remaining <= WarningThreshold,
	}
}

// Summary shows whatever the storefront last checked out, or zeros.
func (s *PaymentService) Summary(ctx context.Context) (SummaryView, error) {
	summary, err := s.keys.PaymentSummary.Get(ctx)
	if err != nil {
		return SummaryView{}, err
	}
	return NewSummaryView(summary), nil
}

func (s *PaymentService) StartCountdown(ctx context.Context) (CountdownView, error) {
	id := "P-" + uuid.NewString()
	if err := s.countdowns.Start(ctx, id, s.Window); err != nil {
		return CountdownView{}, fmt.Errorf("start countdown: %w", err)
	}
	return NewCountdownView(id, s.Window), nil
}

func (s *PaymentService) Countdown(ctx context.Context, id string) (CountdownView, error) {
	remaining, ok, err := s.countdowns.Remaining(ctx, id)
	if err != nil {
		return CountdownView{}, fmt.Errorf("read countdown %s: %w", id, err)
	}
	if !ok {
		return NewCountdownView(id, 0), nil
	}
	return NewCountdownView(id, remaining), nil
}

// Pay is a simulated charge. It succeeds at most once per countdown and
// never after the window has closed.
func (s *PaymentService) Pay(ctx context.Context, id string, req PayRequest) (Receipt, error) {
	req.Method = strings.TrimSpace(req.Method)
	if err := validation.Struct(req); err != nil {
		return Receipt{}, err
	}

	consumed, err := s.countdowns.Consume(ctx, id)
	if err != nil {
		return Receipt{}, fmt.Errorf("close countdown %s: %w", id, err)
	}
	if !consumed {
		return Receipt{}, ErrPaymentExpired
	}

	summary, err := s.keys.PaymentSummary.Get(ctx)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		CountdownID: id,
		Method:      req.Method,
		Amount:      summary.Total,
		AmountLabel: domain.FormatRupiah(summary.Total),
		Status:      "success",
		PaidAt:      s.Now(),
	}, nil
}

// QRCode encodes the amount currently due as a PNG.
func (s *PaymentService) QRCode(ctx context.Context) ([]byte, error) {
	summary, err := s.keys.PaymentSummary.Get(ctx)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(summary.Total)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return png, nil
}
