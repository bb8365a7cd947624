package service

import (
	"context"
	"strings"

	"warung-site/internal/domain"
	"warung-site/internal/store"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// DefaultMenu is served whenever the admin has not published any items.
var DefaultMenu = []domain.MenuItem{
	{ID: "1", Name: "Nasi Goreng Spesial", Category: domain.CategoryMainCourse, Price: 25000,
		Description: "Nasi goreng dengan campuran telur, ayam, dan sayuran segar",
		Image:       "https://images.unsplash.com/photo-1512058564366-18510be2db19?w=400"},
	{ID: "2", Name: "Mie Ayam Bakso", Category: domain.CategoryMainCourse, Price: 18000,
		Description: "Mie ayam dengan bakso sapi homemade dan kuah gurih",
		Image:       "https://images.unsplash.com/photo-1555126634-323283e090fa?w=400"},
	{ID: "3", Name: "Sate Ayam Madura", Category: domain.CategoryMainCourse, Price: 30000,
		Description: "Sate ayam dengan bumbu kacang khas Madura",
		Image:       "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=400"},
	{ID: "4", Name: "Gado-Gado", Category: domain.CategoryAppetizer, Price: 15000,
		Description: "Sayuran segar dengan bumbu kacang dan lontong",
		Image:       "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400"},
	{ID: "5", Name: "Es Teh Manis", Category: domain.CategoryBeverage, Price: 5000,
		Description: "Es teh manis segar dengan daun teh pilihan",
		Image:       "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=400"},
	{ID: "6", Name: "Jus Alpukat", Category: domain.CategoryBeverage, Price: 12000,
		Description: "Jus alpukat creamy dengan susu kental manis",
		Image:       "https://images.unsplash.com/photo-1546173159-315724a31696?w=400"},
	{ID: "7", Name: "Es Campur", Category: domain.CategoryDessert, Price: 10000,
		Description: "Es campur dengan berbagai macam buah dan jelly",
		Image:       "https://images.unsplash.com/photo-1553530666-ba11a7da3888?w=400"},
	{ID: "8", Name: "Kopi Tubruk", Category: domain.CategoryBeverage, Price: 8000,
		Description: "Kopi tubruk khas Jawa dengan gula batu",
		Image:       "https://images.unsplash.com/photo-1514432324607-a09d9b4aefdd?w=400"},
	{ID: "9", Name: "Pisang Goreng", Category: domain.CategoryDessert, Price: 8000,
		Description: "Pisang goreng crispy dengan topping coklat dan keju",
		Image:       "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400"},
	{ID: "10", Name: "Bakwan Sayur", Category: domain.CategoryAppetizer, Price: 5000,
		Description: "Bakwan sayur goreng dengan campuran wortel dan kol",
		Image:       "https://images.unsplash.com/photo-1603360946369-dc9bb6258143?w=400"},
}

type MenuFilter struct {
	Category string
	Query    string
}

type MenuService struct {
	keys *store.Keyspace
}

func NewMenuService(keys *store.Keyspace) *MenuService {
	return &MenuService{keys: keys}
}

// EffectiveMenu re-reads adminMenuItems on every call so admin edits show up
// on the next request.
func (s *MenuService) EffectiveMenu(ctx context.Context) ([]domain.MenuItem, error) {
	adminItems, err := s.keys.AdminMenuItems.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(adminItems) == 0 {
		menu := make([]domain.MenuItem, len(DefaultMenu))
		copy(menu, DefaultMenu)
		return menu, nil
	}

	menu := make([]domain.MenuItem, 0, len(adminItems))
	for idx, item := range adminItems {
		menu = append(menu, domain.NormalizeMenuItem(idx, item))
	}
	return menu, nil
}

func (s *MenuService) List(ctx context.Context, filter MenuFilter) ([]domain.MenuItem, error) {
	menu, err := s.EffectiveMenu(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]domain.MenuItem, 0, len(menu))
	for _, item := range menu {
		if filter.Category != "" && filter.Category != CategoryAll && string(item.Category) != filter.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func findMenuItem(menu []domain.MenuItem, id string) (domain.MenuItem, bool) {
	for _, item := range menu {
		if item.ID == id {
			return item, true
		}
	}
	return domain.MenuItem{}, false
}
