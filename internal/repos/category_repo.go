package repos

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
)

// ErrInUse marks a delete rejected by a foreign key, so callers can show a
// message distinct from a generic failure.
var ErrInUse = errors.New("record is referenced by other rows")

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `
  id, name, COALESCE(description,'') AS description, COALESCE(image,'') AS image,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT `+categoryCols+` FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, description, image, created_at)
	  VALUES(?, ?, NULLIF(?,''), NULLIF(?,''), CURRENT_TIMESTAMP)
	`, c.ID, c.Name, c.Description, c.Image)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	_, err := r.db.Exec(`
	  UPDATE categories
	  SET name = ?, description = NULLIF(?,''), image = NULLIF(?,''), updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, c.Name, c.Description, c.Image, c.ID)
	return err
}

// Delete removes a category. Referencing products keep existing but lose their
// category (ON DELETE SET NULL); a hard FK rejection maps to ErrInUse.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return ErrInUse
	}
	return err
}
