package services

import (
	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(id string) (domain.Category, error) {
	return s.Cats.Get(id)
}

func (s *CatalogService) FeaturedProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.Prods.Featured(limit)
}

func (s *CatalogService) ListProductsByCategory(catID string, sort domain.SortKey, page, pageSize int) ([]domain.Product, error) {
	if !sort.Valid() {
		sort = domain.SortFeatured
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.ListByCategory(catID, sort, pageSize, offset)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Search(q, category string, sort domain.SortKey, page, pageSize int) ([]domain.Product, error) {
	if !sort.Valid() {
		sort = domain.SortFeatured
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.Search(q, category, sort, pageSize, offset)
}
