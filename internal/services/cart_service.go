package services

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
)

var ErrUnknownProduct = errors.New("product not found")

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

type CartView struct {
	CartID string
	Items  []CartItemView
	Total  decimal.Decimal
}

type CartItemView struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Stock     int
	Image     string
	Qty       int
	Subtotal  decimal.Decimal
}

func (v CartView) Empty() bool { return len(v.Items) == 0 }

// GetOrCreateCart exposes the owner -> cart resolution; repeated calls for
// the same owner always return the same id.
func (s *CartService) GetOrCreateCart(owner domain.OwnerKey) (string, error) {
	return s.Carts.Ensure(owner)
}

// Add increases the quantity of a product line, creating it if absent.
// The resulting quantity is clamped to the product's live stock; a clamp
// down to zero removes the line entirely.
func (s *CartService) Add(owner domain.OwnerKey, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.Ensure(owner)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUnknownProduct
		}
		return err
	}
	cur, err := s.Carts.ItemQty(cartID, productID)
	if err != nil {
		return err
	}
	return s.writeClamped(cartID, productID, cur+qty, p.Stock)
}

// SetQuantity sets a line to an exact quantity. Zero or less removes the
// line, matching the remove operation.
func (s *CartService) SetQuantity(owner domain.OwnerKey, productID string, qty int) error {
	cartID, err := s.Carts.Ensure(owner)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return s.Carts.RemoveItem(cartID, productID)
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUnknownProduct
		}
		return err
	}
	return s.writeClamped(cartID, productID, qty, p.Stock)
}

func (s *CartService) writeClamped(cartID, productID string, qty, stock int) error {
	if qty > stock {
		qty = stock
	}
	if qty <= 0 {
		return s.Carts.RemoveItem(cartID, productID)
	}
	return s.Carts.SetItemQty(cartID, productID, qty)
}

func (s *CartService) Remove(owner domain.OwnerKey, productID string) error {
	cartID, err := s.Carts.Ensure(owner)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

// View lists the cart joined with live product data and totals it at live
// prices. The cart is a quote; nothing here is snapshotted.
func (s *CartService) View(owner domain.OwnerKey) (CartView, error) {
	cartID, err := s.Carts.Ensure(owner)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	view := CartView{CartID: cartID, Total: decimal.Zero}
	for _, l := range lines {
		sub := l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
		view.Items = append(view.Items, CartItemView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Stock:     l.Stock,
			Image:     l.Image,
			Qty:       l.Qty,
			Subtotal:  sub,
		})
		view.Total = view.Total.Add(sub)
	}
	return view, nil
}
