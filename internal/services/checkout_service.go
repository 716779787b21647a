package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
)

var (
	ErrCartEmpty    = errors.New("cart is empty")
	ErrNotSignedIn  = errors.New("checkout requires a signed-in user")
	ErrOrderPartial = errors.New("order was created incompletely")
)

// CheckoutService drives the per-user checkout flow and turns a confirmed
// flow into an immutable order. Flows live in memory keyed by user id; they
// are throwaway form state, not durable data.
type CheckoutService struct {
	Cart   *CartService
	Orders *repos.OrderRepo

	mu    sync.Mutex
	flows map[string]*CheckoutFlow
}

func NewCheckoutService(cart *CartService, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{Cart: cart, Orders: orders, flows: make(map[string]*CheckoutFlow)}
}

// Flow returns the user's current flow, starting a fresh one at shipping if
// none exists. Anonymous users cannot check out.
func (s *CheckoutService) Flow(userID string) (*CheckoutFlow, error) {
	if userID == "" {
		return nil, ErrNotSignedIn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[userID]
	if !ok {
		f = NewCheckoutFlow()
		s.flows[userID] = f
	}
	return f, nil
}

// Reset discards the flow, e.g. when the user leaves checkout or after the
// success page has been shown.
func (s *CheckoutService) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, userID)
}

// Submit executes the order-creation sequence from the confirmation step:
// order header at live prices, one snapshot line per cart item, clear cart,
// advance to success. The steps are individual writes with no wrapping
// transaction; a failure mid-way is surfaced as ErrOrderPartial and already
// inserted rows stay (the cart is only cleared after every line landed).
func (s *CheckoutService) Submit(userID string) (string, error) {
	f, err := s.Flow(userID)
	if err != nil {
		return "", err
	}
	if f.Step != StepConfirmation {
		return "", ErrFlowStep
	}

	owner := domain.UserOwner(userID)
	view, err := s.Cart.View(owner)
	if err != nil {
		return "", err
	}
	if view.Empty() {
		return "", ErrCartEmpty
	}

	orderID := uuid.NewString()
	order := domain.Order{
		ID:            orderID,
		UserID:        userID,
		Status:        domain.OrderPending,
		Total:         view.Total,
		FullName:      f.Shipping.FullName,
		Address:       f.Shipping.Address,
		City:          f.Shipping.City,
		Phone:         f.Shipping.Phone,
		Notes:         f.Shipping.Notes,
		PaymentMethod: f.Payment.Method,
	}
	if err := s.Orders.Create(order); err != nil {
		return "", err
	}

	for _, it := range view.Items {
		line := domain.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     orderID,
			ProductID:   it.ProductID,
			ProductName: it.Name,
			Price:       it.Price,
			Qty:         it.Qty,
			Subtotal:    it.Price.Mul(decimal.NewFromInt(int64(it.Qty))),
		}
		if err := s.Orders.InsertItem(line); err != nil {
			return "", errors.Join(ErrOrderPartial, err)
		}
	}

	if err := s.Cart.Carts.Clear(view.CartID); err != nil {
		return "", errors.Join(ErrOrderPartial, err)
	}

	f.Step = StepSuccess
	f.OrderID = orderID
	return orderID, nil
}
