package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Image       string `db:"image"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

type Product struct {
	ID          string          `db:"id"`
	CategoryID  string          `db:"category_id"` // empty when uncategorized
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	Image       string          `db:"image"`
	Featured    bool            `db:"featured"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

// SortKey selects a catalog ordering.
type SortKey string

const (
	SortFeatured  SortKey = "featured" // featured first, then newest
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortNameAsc:
		return true
	}
	return false
}
