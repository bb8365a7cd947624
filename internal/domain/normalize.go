package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FallbackImage is shown for admin-authored items saved without a picture.
const FallbackImage = "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=400"

// UnmarshalJSON accepts ids and prices written either as JSON numbers or as
// strings, which is how hand-edited and older records show up in storage.
func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		Name        string          `json:"name"`
		Category    Category        `json:"category"`
		Price       json.RawMessage `json:"price"`
		Description string          `json:"description"`
		Image       string          `json:"image"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.ID = coerceString(raw.ID)
	m.Name = raw.Name
	m.Category = raw.Category
	m.Price = coerceInt(raw.Price)
	m.Description = raw.Description
	m.Image = raw.Image
	return nil
}

func (l *CartLine) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &l.MenuItem); err != nil {
		return err
	}
	var raw struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Quantity = int(coerceInt(raw.Quantity))
	return nil
}

// NormalizeMenuItem fills the defaults the storefront relies on. idx is the
// item's position in its list and only matters when the id is missing.
func NormalizeMenuItem(idx int, m MenuItem) MenuItem {
	if m.ID == "" {
		m.ID = "A-" + strconv.Itoa(idx+1)
	}
	if m.Category == "" {
		m.Category = CategoryMainCourse
	}
	if m.Price < 0 {
		m.Price = 0
	}
	if m.Image == "" {
		m.Image = FallbackImage
	}
	return m
}

func NormalizeReservation(r Reservation) Reservation {
	if !r.Status.Valid() {
		r.Status = ReservationPending
	}
	if r.Guests < 0 {
		r.Guests = 0
	}
	return r
}

func NormalizeOrder(o Order) Order {
	if !o.Status.Valid() {
		o.Status = OrderPending
	}
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	return o
}

// NormalizeCart drops lines that can no longer be bought.
func NormalizeCart(lines []CartLine) []CartLine {
	out := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ID == "" || line.Quantity <= 0 {
			continue
		}
		if line.Price < 0 {
			line.Price = 0
		}
		out = append(out, line)
	}
	return out
}

func NormalizePaymentSummary(s PaymentSummary) PaymentSummary {
	if s.Subtotal < 0 {
		s.Subtotal = 0
	}
	if s.Tax < 0 {
		s.Tax = 0
	}
	if s.DeliveryFee < 0 {
		s.DeliveryFee = 0
	}
	if s.Total < 0 {
		s.Total = 0
	}
	return s
}

func coerceString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func coerceInt(raw json.RawMessage) int64 {
	text := strings.TrimSpace(coerceString(raw))
	if text == "" {
		return 0
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

// ParsePrice reads a price typed into a form. Anything that is not a
// non-negative number becomes 0.
func ParsePrice(raw json.RawMessage) int64 {
	price := coerceInt(raw)
	if price < 0 {
		return 0
	}
	return price
}
