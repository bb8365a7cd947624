package service

import (
	"context"
	"errors"
	"fmt"

	"warung-site/internal/domain"
	"warung-site/internal/store"
)

var ErrEmptyCart = errors.New("cart is empty")

// PaymentPagePath is where the browser goes after a successful checkout.
const PaymentPagePath = "/pembayaran/index.html"

type CartView struct {
	Items         []domain.CartLine `json:"items"`
	Count         int               `json:"count"`
	Subtotal      int64             `json:"subtotal"`
	SubtotalLabel string            `json:"subtotalLabel"`
}

type CheckoutResult struct {
	Summary     domain.PaymentSummary `json:"summary"`
	TotalLabel  string                `json:"totalLabel"`
	RedirectURL string                `json:"redirectUrl"`
}

type CartService struct {
	keys  *store.Keyspace
	menu  MenuServiceInterface
	price FeePolicy
}

func NewCartService(keys *store.Keyspace, menu MenuServiceInterface, policy FeePolicy) *CartService {
	if policy == nil {
		policy = SubtotalOnly
	}
	return &CartService{keys: keys, menu: menu, price: policy}
}

func newCartView(lines []domain.CartLine) CartView {
	view := CartView{Items: lines}
	if view.Items == nil {
		view.Items = []domain.CartLine{}
	}
	for _, line := range lines {
		view.Count += line.Quantity
		view.Subtotal += line.Price * int64(line.Quantity)
	}
	view.SubtotalLabel = domain.FormatRupiah(view.Subtotal)
	return view
}

func (s *CartService) View(ctx context.Context) (CartView, error) {
	lines, err := s.keys.Cart.Get(ctx)
	if err != nil {
		return CartView{}, err
	}
	return newCartView(lines), nil
}

// Add puts one unit of the menu item in the cart. Unknown ids are ignored.
func (s *CartService) Add(ctx context.Context, itemID string) (CartView, error) {
	menu, err := s.menu.EffectiveMenu(ctx)
	if err != nil {
		return CartView{}, err
	}
	item, ok := findMenuItem(menu, itemID)
	if !ok {
		return s.View(ctx)
	}

	lines, err := s.keys.Cart.Update(ctx, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		for i := range lines {
			if lines[i].ID == itemID {
				lines[i].Quantity++
				return lines, nil
			}
		}
		return append(lines, domain.CartLine{MenuItem: item, Quantity: 1}), nil
	})
	if err != nil {
		return CartView{}, err
	}
	return newCartView(lines), nil
}

// ChangeQuantity adds delta to a line; the line is dropped once it reaches
// zero. Ids not in the cart are ignored.
func (s *CartService) ChangeQuantity(ctx context.Context, itemID string, delta int) (CartView, error) {
	lines, err := s.keys.Cart.Update(ctx, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		for i := range lines {
			if lines[i].ID != itemID {
				continue
			}
			lines[i].Quantity += delta
			if lines[i].Quantity <= 0 {
				return removeLine(lines, itemID), nil
			}
			return lines, nil
		}
		return lines, store.ErrNoChange
	})
	if err != nil {
		return CartView{}, err
	}
	return newCartView(lines), nil
}

func (s *CartService) Remove(ctx context.Context, itemID string) (CartView, error) {
	lines, err := s.keys.Cart.Update(ctx, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		return removeLine(lines, itemID), nil
	})
	if err != nil {
		return CartView{}, err
	}
	return newCartView(lines), nil
}

// Checkout prices the cart and hands the summary to the payment page. The
// cart itself is left as is.
func (s *CartService) Checkout(ctx context.Context) (CheckoutResult, error) {
	view, err := s.View(ctx)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(view.Items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	summary := s.price(view.Subtotal)
	if err := s.keys.PaymentSummary.Put(ctx, summary); err != nil {
		return CheckoutResult{}, fmt.Errorf("save payment summary: %w", err)
	}

	return CheckoutResult{
		Summary:     summary,
		TotalLabel:  domain.FormatRupiah(summary.Total),
		RedirectURL: PaymentPagePath,
	}, nil
}

func removeLine(lines []domain.CartLine, itemID string) []domain.CartLine {
	out := lines[:0]
	for _, line := range lines {
		if line.ID != itemID {
			out = append(out, line)
		}
	}
	return out
}
