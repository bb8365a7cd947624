package service

import (
	"context"
	"strings"

	"warung-site/internal/domain"
	"warung-site/internal/store"
)

type SettingsService struct {
	keys *store.Keyspace
}

func NewSettingsService(keys *store.Keyspace) *SettingsService {
	return &SettingsService{keys: keys}
}

func (s *SettingsService) Hours(ctx context.Context) (domain.OperatingHours, error) {
	return s.keys.OperatingHours.Get(ctx)
}

func (s *SettingsService) Info(ctx context.Context) (domain.RestaurantInfo, error) {
	return s.keys.RestaurantInfo.Get(ctx)
}

// UpdateHours overwrites operatingHours. Blank fields fall back to 10:00 and 22:00.
func (s *SettingsService) UpdateHours(ctx context.Context, hours domain.OperatingHours) (domain.OperatingHours, error) {
	hours.OpenTime = strings.TrimSpace(hours.OpenTime)
	hours.CloseTime = strings.TrimSpace(hours.CloseTime)
	if hours.OpenTime == "" {
		hours.OpenTime = store.DefaultOperatingHours.OpenTime
	}
	if hours.CloseTime == "" {
		hours.CloseTime = store.DefaultOperatingHours.CloseTime
	}
	if err := s.keys.OperatingHours.Put(ctx, hours); err != nil {
		return domain.OperatingHours{}, err
	}
	return hours, nil
}

func (s *SettingsService) UpdateInfo(ctx context.Context, info domain.RestaurantInfo) (domain.RestaurantInfo, error) {
	if err := s.keys.RestaurantInfo.Put(ctx, info); err != nil {
		return domain.RestaurantInfo{}, err
	}
	return info, nil
}
