package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/events"
	"warung-site/internal/store"
	"warung-site/internal/validation"
)

var ErrCapacityExceeded = errors.New("not enough seats left for this reservation")

const (
	CapacityLabelFull      = "Restoran Penuh"
	CapacityLabelAlmost    = "Hampir Penuh"
	CapacityLabelAvailable = "Tersedia"

	almostFullPercentage = 80
)

type ReservationRequest struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	Guests          int    `json:"guests" validate:"gt=0"`
	SpecialRequests string `json:"specialRequests"`
}

type CapacityIndicator struct {
	Total      int    `json:"total"`
	Occupied   int    `json:"occupied"`
	Percentage int    `json:"percentage"`
	Full       bool   `json:"full"`
	Label      string `json:"label"`
}

func NewCapacityIndicator(c domain.Capacity) CapacityIndicator {
	indicator := CapacityIndicator{Total: c.Total, Occupied: c.Occupied}
	if c.Total > 0 {
		indicator.Percentage = int(math.Round(float64(c.Occupied) / float64(c.Total) * 100))
	}
	indicator.Full = c.Occupied >= c.Total

	switch {
	case indicator.Full:
		indicator.Label = CapacityLabelFull
	case indicator.Percentage >= almostFullPercentage:
		indicator.Label = CapacityLabelAlmost
	default:
		indicator.Label = CapacityLabelAvailable
	}
	return indicator
}

type ReservationService struct {
	keys      *store.Keyspace
	publisher EventPublisher
	// Delay simulates the confirmation round trip before anything is saved.
	Delay time.Duration
	Now   func() time.Time
}

func NewReservationService(keys *store.Keyspace, publisher EventPublisher, delay time.Duration) *ReservationService {
	return &ReservationService{keys: keys, publisher: publisher, Delay: delay, Now: time.Now}
}

func (s *ReservationService) Capacity(ctx context.Context) (CapacityIndicator, error) {
	capacity, err := s.keys.Capacity.Get(ctx)
	if err != nil {
		return CapacityIndicator{}, err
	}
	return NewCapacityIndicator(capacity), nil
}

// Create books seats and appends a pending reservation. A request that would
// push occupancy past the total is refused without touching storage.
func (s *ReservationService) Create(ctx context.Context, req ReservationRequest) (domain.Reservation, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	if err := validation.Struct(req); err != nil {
		return domain.Reservation{}, err
	}

	capacity, err := s.keys.Capacity.Get(ctx)
	if err != nil {
		return domain.Reservation{}, err
	}
	if capacity.Occupied+req.Guests > capacity.Total {
		return domain.Reservation{}, ErrCapacityExceeded
	}

	if err := sleepContext(ctx, s.Delay); err != nil {
		return domain.Reservation{}, err
	}

	// Seats may have gone while we waited, so the check runs again under the
	// key's update lock.
	_, err = s.keys.Capacity.Update(ctx, func(c domain.Capacity) (domain.Capacity, error) {
		if c.Occupied+req.Guests > c.Total {
			return c, ErrCapacityExceeded
		}
		c.Occupied += req.Guests
		return c, nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	now := s.Now()
	reservation := domain.Reservation{
		Name:      req.Name,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Guests:    req.Guests,
		Status:    domain.ReservationPending,
		CreatedAt: now.UnixMilli(),
	}

	if _, err := s.keys.Reservations.Update(ctx, func(list []domain.Reservation) ([]domain.Reservation, error) {
		reservation.ID = domain.UniqueID("R-"+strconv.FormatInt(now.UnixMilli(), 10), func(id string) bool {
			for _, r := range list {
				if r.ID == id {
					return true
				}
			}
			return false
		})
		return append(list, reservation), nil
	}); err != nil {
		s.releaseSeats(ctx, req.Guests)
		return domain.Reservation{}, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.Message{
			Type:          events.TypeReservationCreated,
			ReservationID: reservation.ID,
			Name:          reservation.Name,
			Phone:         reservation.Phone,
			Date:          reservation.Date,
			Time:          reservation.Time,
			Guests:        reservation.Guests,
			Message:       req.SpecialRequests,
			Timestamp:     now,
		}); err != nil {
			log.Printf("WARNING: reservation %s saved but confirmation not queued: %v", reservation.ID, err)
		}
	}

	return reservation, nil
}

// releaseSeats gives back seats taken for a reservation that could not be
// saved.
func (s *ReservationService) releaseSeats(ctx context.Context, guests int) {
	_, err := s.keys.Capacity.Update(context.WithoutCancel(ctx), func(c domain.Capacity) (domain.Capacity, error) {
		c.Occupied -= guests
		return c, nil
	})
	if err != nil {
		log.Printf("WARNING: could not release %d seats: %v", guests, err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
