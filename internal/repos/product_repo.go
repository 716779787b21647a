package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, COALESCE(category_id,'') AS category_id, name, COALESCE(description,'') AS description,
  price, stock, COALESCE(image,'') AS image, featured,
  created_at, COALESCE(updated_at,'') AS updated_at`

func orderClause(sort domain.SortKey) string {
	switch sort {
	case domain.SortPriceAsc:
		return `ORDER BY price ASC`
	case domain.SortPriceDesc:
		return `ORDER BY price DESC`
	case domain.SortNameAsc:
		return `ORDER BY LOWER(name) ASC`
	default:
		return `ORDER BY featured DESC, created_at DESC`
	}
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) ListByCategory(catID string, sort domain.SortKey, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ?
	  `+orderClause(sort)+`
	  LIMIT ? OFFSET ?
	`, catID, limit, offset)
	return out, err
}

func (r *ProductRepo) Search(q, catID string, sort domain.SortKey, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}

	query := `
	  SELECT ` + productCols + `
	  FROM products
	  WHERE ` + where + `
	  ` + orderClause(sort) + `
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) Featured(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE featured = 1
	  ORDER BY created_at DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// ---------- Admin CRUD ----------

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, description, price, stock, image, featured, created_at)
	  VALUES(?, NULLIF(?,''), ?, NULLIF(?,''), ?, ?, NULLIF(?,''), ?, CURRENT_TIMESTAMP)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.Image, p.Featured)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET category_id = NULLIF(?,''), name = ?, description = NULLIF(?,''),
	      price = ?, stock = ?, image = NULLIF(?,''), featured = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.Image, p.Featured, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// ---------- Stock ----------

// Stock returns the live quantity; sql.ErrNoRows if the product is gone.
func (r *ProductRepo) Stock(id string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT stock FROM products WHERE id = ?`, id)
	return qty, err
}

// SetStock writes an absolute quantity. Fulfillment computes the clamped value;
// the CHECK constraint backstops against negatives.
func (r *ProductRepo) SetStock(id string, qty int) error {
	_, err := r.db.Exec(`UPDATE products SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, qty, id)
	return err
}
