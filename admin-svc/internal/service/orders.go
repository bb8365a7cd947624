package service

import (
	"context"

	"warung-site/internal/domain"
	"warung-site/internal/store"
)

type OrderService struct {
	keys *store.Keyspace
}

func NewOrderService(keys *store.Keyspace) *OrderService {
	return &OrderService{keys: keys}
}

func (s *OrderService) List(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	all, err := s.keys.Orders.Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if filter.matchesStatus(string(o.Status)) && filter.matchesQuery(o.ID, o.CustomerName) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	all, err := s.keys.Orders.Get(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, o := range all {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// Advance moves the order one step along domain.OrderFlow.
func (s *OrderService) Advance(ctx context.Context, id string) ([]domain.Order, error) {
	return s.mutate(ctx, id, func(o *domain.Order) {
		o.Status = o.Status.Next()
	})
}

func (s *OrderService) Cancel(ctx context.Context, id string) ([]domain.Order, error) {
	return s.mutate(ctx, id, func(o *domain.Order) {
		o.Status = domain.OrderCancelled
	})
}

func (s *OrderService) mutate(ctx context.Context, id string, fn func(*domain.Order)) ([]domain.Order, error) {
	return s.keys.Orders.Update(ctx, func(list []domain.Order) ([]domain.Order, error) {
		for i := range list {
			if list[i].ID == id {
				before := list[i].Status
				fn(&list[i])
				if list[i].Status == before {
					return list, store.ErrNoChange
				}
				return list, nil
			}
		}
		return list, store.ErrNoChange
	})
}
