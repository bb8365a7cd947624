package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"warung-site/internal/store"
)

const (
	StatusOpen   = "BUKA"
	StatusClosed = "TUTUP"
)

type RestaurantStatus struct {
	Open      bool               `json:"open"`
	Label     string             `json:"label"`
	Info      string             `json:"info"`
	OpenHour  int                `json:"openHour"`
	CloseHour int                `json:"closeHour"`
	Capacity  *CapacityIndicator `json:"capacity,omitempty"`
}

type StatusService struct {
	keys         *store.Keyspace
	reservations ReservationServiceInterface
}

func NewStatusService(keys *store.Keyspace, reservations ReservationServiceInterface) *StatusService {
	return &StatusService{keys: keys, reservations: reservations}
}

// Status reports whether the restaurant is open at now. Only the hour part
// of the configured times is compared and every day is an open day.
func (s *StatusService) Status(ctx context.Context, now time.Time) (RestaurantStatus, error) {
	hours, err := s.keys.OperatingHours.Get(ctx)
	if err != nil {
		return RestaurantStatus{}, err
	}

	openHour := parseHour(hours.OpenTime, parseHour(store.DefaultOperatingHours.OpenTime, 10))
	closeHour := parseHour(hours.CloseTime, parseHour(store.DefaultOperatingHours.CloseTime, 22))
	hour := now.Hour()

	status := RestaurantStatus{OpenHour: openHour, CloseHour: closeHour}
	switch {
	case hour >= openHour && hour < closeHour:
		status.Open = true
		status.Label = StatusOpen
		status.Info = fmt.Sprintf("Buka sampai jam %d:00", closeHour)
	case hour < openHour:
		status.Label = StatusClosed
		status.Info = fmt.Sprintf("Buka jam %d:00", openHour)
	default:
		status.Label = StatusClosed
		status.Info = "Buka besok"
	}

	if status.Open && s.reservations != nil {
		indicator, err := s.reservations.Capacity(ctx)
		if err != nil {
			return RestaurantStatus{}, err
		}
		status.Capacity = &indicator
	}
	return status, nil
}

func parseHour(hhmm string, fallback int) int {
	head, _, _ := strings.Cut(strings.TrimSpace(hhmm), ":")
	hour, err := strconv.Atoi(head)
	if err != nil || hour < 0 || hour > 24 {
		return fallback
	}
	return hour
}
