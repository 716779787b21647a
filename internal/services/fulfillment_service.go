package services

import (
	"database/sql"
	"errors"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
)

var (
	ErrBadStatus      = errors.New("unknown order status")
	ErrTerminalStatus = errors.New("order is in a terminal status")
)

// FulfillmentService finalizes orders. Completing an order is the single
// place stock is mutated in response to a sale.
type FulfillmentService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewFulfillmentService(orders *repos.OrderRepo, prods *repos.ProductRepo) *FulfillmentService {
	return &FulfillmentService{Orders: orders, Prods: prods}
}

// CompleteOrder decrements stock for every line, clamped at zero, then marks
// the order delivered. Each line is an independent read-then-write with no
// cross-item or cross-order locking; if a write fails mid-loop, earlier
// decrements stand and the status stays unchanged.
func (s *FulfillmentService) CompleteOrder(orderID string) error {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return ErrTerminalStatus
	}

	lines, err := s.Orders.FulfillmentLines(orderID)
	if err != nil {
		return err
	}
	for _, l := range lines {
		stock, err := s.Prods.Stock(l.ProductID)
		if err != nil {
			if err == sql.ErrNoRows {
				continue // product deleted since purchase; nothing to decrement
			}
			return err
		}
		newStock := stock - l.Qty
		if newStock < 0 {
			newStock = 0
		}
		if err := s.Prods.SetStock(l.ProductID, newStock); err != nil {
			return err
		}
	}

	return s.Orders.UpdateStatus(orderID, domain.OrderDelivered)
}

// SetStatus applies a manual admin transition. Delivered must go through
// CompleteOrder so stock is adjusted; terminal orders reject any change.
func (s *FulfillmentService) SetStatus(orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrBadStatus
	}
	if status == domain.OrderDelivered {
		return s.CompleteOrder(orderID)
	}
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return err
	}
	if o.Status.Terminal() {
		return ErrTerminalStatus
	}
	return s.Orders.UpdateStatus(orderID, status)
}
