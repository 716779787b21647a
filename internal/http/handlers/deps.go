package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/saaltamirano2-glitch/NexoShop/internal/config"
	"github.com/saaltamirano2-glitch/NexoShop/internal/metrics"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
)

type Deps struct {
	CatalogHandler      *CatalogHandler
	ProductHandler      *ProductHandler
	AvailabilityHandler *AvailabilityHandler
	CartHandler         *CartHandler
	CheckoutHandler     *CheckoutHandler
	OrderHandler        *OrderHandler
	AdminHandler        *AdminHandler
	AdminCatalogHandler *AdminCatalogHandler
	AdminExportHandler  *AdminExportHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, m *metrics.Shop) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	invSvc := services.NewInventoryService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartSvc, orderRepo)
	fulfillSvc := services.NewFulfillmentService(orderRepo, prodRepo)

	return &Deps{
		CatalogHandler:      &CatalogHandler{Catalog: catalogSvc},
		ProductHandler:      &ProductHandler{Catalog: catalogSvc},
		AvailabilityHandler: &AvailabilityHandler{Inv: invSvc},
		CartHandler:         &CartHandler{Cart: cartSvc},
		CheckoutHandler:     &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Metrics: m},
		OrderHandler:        &OrderHandler{Repo: orderRepo, Auth: auth},
		AdminHandler:        &AdminHandler{Orders: orderRepo, Fulfill: fulfillSvc, Users: userRepo, Metrics: m},
		AdminCatalogHandler: &AdminCatalogHandler{Catalog: catalogSvc, Cats: catRepo, Prods: prodRepo, MediaDir: cfg.MediaDir},
		AdminExportHandler:  &AdminExportHandler{Orders: orderRepo, Prods: prodRepo, Cats: catRepo},
	}
}
