package service

import (
	"context"
	"errors"
	"strings"

	"warung-site/internal/domain"
	"warung-site/internal/store"
)

var ErrNotFound = errors.New("record not found")

// StatusAll disables status filtering on the admin lists.
const StatusAll = "all"

type ListFilter struct {
	Status string
	Query  string
}

func (f ListFilter) matchesStatus(status string) bool {
	return f.Status == "" || f.Status == StatusAll || f.Status == status
}

// matchesQuery is a case-insensitive substring search over fields joined by
// spaces.
func (f ListFilter) matchesQuery(fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), q)
}

type ReservationService struct {
	keys *store.Keyspace
}

func NewReservationService(keys *store.Keyspace) *ReservationService {
	return &ReservationService{keys: keys}
}

func (s *ReservationService) List(ctx context.Context, filter ListFilter) ([]domain.Reservation, error) {
	all, err := s.keys.Reservations.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(all))
	for _, r := range all {
		if filter.matchesStatus(string(r.Status)) && filter.matchesQuery(r.ID, r.Name, r.Phone) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (domain.Reservation, error) {
	all, err := s.keys.Reservations.Get(ctx)
	if err != nil {
		return domain.Reservation{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Reservation{}, ErrNotFound
}

func (s *ReservationService) Confirm(ctx context.Context, id string) ([]domain.Reservation, error) {
	return s.setStatus(ctx, id, domain.ReservationConfirmed)
}

func (s *ReservationService) Cancel(ctx context.Context, id string) ([]domain.Reservation, error) {
	return s.setStatus(ctx, id, domain.ReservationCancelled)
}

// setStatus overwrites the status of the first reservation with id. An unknown
// id leaves storage untouched and returns the list as it is.
func (s *ReservationService) setStatus(ctx context.Context, id string, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return s.keys.Reservations.Update(ctx, func(list []domain.Reservation) ([]domain.Reservation, error) {
		for i := range list {
			if list[i].ID == id {
				list[i].Status = status
				return list, nil
			}
		}
		return list, store.ErrNoChange
	})
}
