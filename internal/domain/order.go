package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether an order in this status accepts no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash" // pago contra entrega
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCash
}

type Order struct {
	ID            string          `db:"id"`
	UserID        string          `db:"user_id"`
	Status        OrderStatus     `db:"status"`
	Total         decimal.Decimal `db:"total"`
	FullName      string          `db:"full_name"`
	Address       string          `db:"address"`
	City          string          `db:"city"`
	Phone         string          `db:"phone"`
	Notes         string          `db:"notes"`
	PaymentMethod PaymentMethod   `db:"payment_method"`
	CreatedAt     string          `db:"created_at"`
	UpdatedAt     string          `db:"updated_at"`
}

// OrderItem is a purchase-time snapshot. Name and price are copied from the
// product at submission so later catalog edits never rewrite history.
type OrderItem struct {
	ID          string          `db:"id"`
	OrderID     string          `db:"order_id"`
	ProductID   string          `db:"product_id"` // empty if the product was later deleted
	ProductName string          `db:"product_name"`
	Price       decimal.Decimal `db:"price"`
	Qty         int             `db:"qty"`
	Subtotal    decimal.Decimal `db:"subtotal"`
}
