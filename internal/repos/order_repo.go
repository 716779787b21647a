package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  id, user_id, status, total, full_name, address, city,
  COALESCE(phone,'') AS phone, COALESCE(notes,'') AS notes, payment_method,
  created_at, COALESCE(updated_at,'') AS updated_at`

// Create inserts the order header. Lines follow via InsertItem; there is no
// wrapping transaction, so a failed line insert leaves the header and any
// earlier lines in place (see checkout service).
func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, user_id, status, total, full_name, address, city, phone, notes, payment_method, created_at)
	  VALUES
	    (?, ?, ?, ?, ?, ?, ?, NULLIF(?,''), NULLIF(?,''), ?, CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.Status, o.Total, o.FullName, o.Address, o.City, o.Phone, o.Notes, o.PaymentMethod)
	return err
}

func (r *OrderRepo) InsertItem(it domain.OrderItem) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items(id, order_id, product_id, product_name, price, qty, subtotal)
	  VALUES(?, ?, NULLIF(?,''), ?, ?, ?, ?)
	`, it.ID, it.OrderID, it.ProductID, it.ProductName, it.Price, it.Qty, it.Subtotal)
	return err
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	var items []domain.OrderItem
	if err := r.db.Select(&items, `
		SELECT id, order_id, COALESCE(product_id,'') AS product_id, product_name, price, qty, subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_name
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}

// FulfillmentLine is the slice of an order line fulfillment acts on. Lines
// whose product was deleted have no stock to adjust and are skipped upstream.
type FulfillmentLine struct {
	ProductID string `db:"product_id"`
	Qty       int    `db:"qty"`
}

func (r *OrderRepo) FulfillmentLines(orderID string) ([]FulfillmentLine, error) {
	var out []FulfillmentLine
	err := r.db.Select(&out, `
		SELECT product_id, qty FROM order_items
		WHERE order_id = ? AND product_id IS NOT NULL
	`, orderID)
	return out, err
}

// Totals for the admin dashboard.
type OrderStats struct {
	Count   int             `db:"count"`
	Revenue decimal.Decimal `db:"revenue"`
	Pending int             `db:"pending"`
}

func (r *OrderRepo) Stats() (OrderStats, error) {
	var s OrderStats
	err := r.db.Get(&s, `
		SELECT COUNT(*) AS count,
		       COALESCE(SUM(total),0) AS revenue,
		       COALESCE(SUM(CASE WHEN status='pending' THEN 1 ELSE 0 END),0) AS pending
		FROM orders
		WHERE status != 'cancelled'
	`)
	return s, err
}
