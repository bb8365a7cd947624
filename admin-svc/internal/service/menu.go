package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"warung-site/internal/domain"
	"warung-site/internal/store"
	"warung-site/internal/validation"
)

const CategoryAll = "all"

// NewMenuItem is the add-menu form. Price is whatever the form sent and is
// read leniently.
type NewMenuItem struct {
	Name        string          `json:"name" validate:"required"`
	Category    domain.Category `json:"category" validate:"required,oneof=main-course appetizer beverage dessert"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
}

type MenuService struct {
	keys *store.Keyspace
	Now  func() time.Time
}

func NewMenuService(keys *store.Keyspace) *MenuService {
	return &MenuService{keys: keys, Now: time.Now}
}

func (s *MenuService) List(ctx context.Context, category string) ([]domain.MenuItem, error) {
	all, err := s.keys.AdminMenuItems.Get(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" || category == CategoryAll {
		return all, nil
	}
	out := make([]domain.MenuItem, 0, len(all))
	for _, m := range all {
		if string(m.Category) == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MenuService) Create(ctx context.Context, req NewMenuItem) (domain.MenuItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Image = strings.TrimSpace(req.Image)
	if err := validation.Struct(req); err != nil {
		return domain.MenuItem{}, err
	}

	base := "M-" + strconv.FormatInt(s.Now().UnixMilli(), 10)
	item := domain.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Price:       domain.ParsePrice(req.Price),
		Description: req.Description,
		Image:       req.Image,
	}
	_, err := s.keys.AdminMenuItems.Update(ctx, func(list []domain.MenuItem) ([]domain.MenuItem, error) {
		item.ID = domain.UniqueID(base, func(id string) bool {
			for _, m := range list {
				if m.ID == id {
					return true
				}
			}
			return false
		})
		return append(list, item), nil
	})
	if err != nil {
		return domain.MenuItem{}, err
	}
	return item, nil
}

// Rename only touches the name. A blank name keeps the current one.
func (s *MenuService) Rename(ctx context.Context, id, name string) ([]domain.MenuItem, error) {
	name = strings.TrimSpace(name)
	return s.keys.AdminMenuItems.Update(ctx, func(list []domain.MenuItem) ([]domain.MenuItem, error) {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if name == "" || name == list[i].Name {
				return list, store.ErrNoChange
			}
			list[i].Name = name
			return list, nil
		}
		return list, store.ErrNoChange
	})
}

func (s *MenuService) Delete(ctx context.Context, id string) ([]domain.MenuItem, error) {
	return s.keys.AdminMenuItems.Update(ctx, func(list []domain.MenuItem) ([]domain.MenuItem, error) {
		out := make([]domain.MenuItem, 0, len(list))
		for _, m := range list {
			if m.ID != id {
				out = append(out, m)
			}
		}
		if len(out) == len(list) {
			return list, store.ErrNoChange
		}
		return out, nil
	})
}
