package repos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is a cart item joined with live product data. The cart is a quote:
// price and stock reflect the catalog right now, not the moment of adding.
type CartLine struct {
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Stock     int             `db:"stock"`
	Image     string          `db:"image"`
	Qty       int             `db:"qty"`
}

func ownerColumn(owner domain.OwnerKey) (col, key string) {
	if owner.Anonymous() {
		return "session_token", owner.Token
	}
	return "user_id", owner.UserID
}

// Ensure returns the cart id for an owner, creating the cart on first access.
// Insert-then-select over the unique owner column keeps concurrent calls for
// the same owner converging on a single cart.
func (r *CartRepo) Ensure(owner domain.OwnerKey) (string, error) {
	col, key := ownerColumn(owner)
	if key == "" {
		return "", sql.ErrNoRows
	}
	if _, err := r.db.Exec(`
		INSERT INTO carts(id,`+col+`,updated_at) VALUES(?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(`+col+`) DO NOTHING
	`, uuid.NewString(), key); err != nil {
		return "", err
	}
	var id string
	err := r.db.Get(&id, `SELECT id FROM carts WHERE `+col+` = ?`, key)
	return id, err
}

func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.product_id, p.name, p.price, p.stock, COALESCE(p.image,'') AS image, ci.qty
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY p.name
	`, cartID)
	return lines, err
}

// ItemQty returns the stored quantity for one line, 0 if absent.
func (r *CartRepo) ItemQty(cartID, productID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT qty FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return qty, err
}

// SetItemQty writes an exact quantity, inserting the line if needed.
func (r *CartRepo) SetItemQty(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,created_at)
		VALUES(?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty)
	return err
}

func (r *CartRepo) RemoveItem(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

// MergeForLogin folds the anonymous cart for a session token into the user's
// cart: quantities add per product and the anonymous cart is dropped. Called
// once on successful login.
func (r *CartRepo) MergeForLogin(userID, token string) (merged bool, err error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var anonID string
	if err := tx.Get(&anonID, `SELECT id FROM carts WHERE session_token = ?`, token); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	var userCartID sql.NullString
	if err := tx.Get(&userCartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err != nil && err != sql.ErrNoRows {
		return false, err
	}

	// No user cart yet: rebind the anonymous cart to the user.
	if !userCartID.Valid {
		if _, err := tx.Exec(`
			UPDATE carts SET user_id = ?, session_token = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?
		`, userID, anonID); err != nil {
			return false, err
		}
		return true, tx.Commit()
	}

	type line struct {
		ProductID string `db:"product_id"`
		Qty       int    `db:"qty"`
	}
	var lines []line
	if err := tx.Select(&lines, `SELECT product_id, qty FROM cart_items WHERE cart_id = ?`, anonID); err != nil {
		return false, err
	}

	for _, it := range lines {
		if _, err := tx.Exec(`
			INSERT INTO cart_items(cart_id, product_id, qty, created_at, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT(cart_id, product_id) DO UPDATE SET
			  qty = qty + excluded.qty,
			  updated_at = CURRENT_TIMESTAMP
		`, userCartID.String, it.ProductID, it.Qty); err != nil {
			return false, err
		}
	}

	if _, err := tx.Exec(`DELETE FROM carts WHERE id = ?`, anonID); err != nil {
		return false, err
	}

	return len(lines) > 0, tx.Commit()
}
