package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/log"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func sortKey(c *fiber.Ctx) domain.SortKey {
	k := domain.SortKey(strings.TrimSpace(c.Query("sort")))
	if !k.Valid() {
		return domain.SortFeatured
	}
	return k
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		log.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	featured, err := h.Catalog.FeaturedProducts(8)
	if err != nil {
		log.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store"})
	}
	return render(c, "home", fiber.Map{"Categories": cats, "Featured": featured})
}

func (h *CatalogHandler) Category(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	cat, err := h.Catalog.GetCategory(catID)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	sort := sortKey(c)
	products, err := h.Catalog.ListProductsByCategory(catID, sort, c.QueryInt("page", 1), 12)
	if err != nil {
		log.Error(c, "category.load", err, map[string]any{"category": catID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "category", fiber.Map{"Category": cat, "Products": products, "Sort": string(sort)})
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// Initial page load: show empty search without errors
		return render(c, "search", fiber.Map{"Q": "", "Products": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}
	q = strings.ToLower(q)
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.ID(category); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
				"Q": q, "Products": []any{}, "Count": 0, "Err": "Invalid category",
			})
		}
	}

	sort := sortKey(c)
	products, err := h.Catalog.Search(q, category, sort, c.QueryInt("page", 1), 20)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	return render(c, "search", fiber.Map{
		"Q": q, "CategoryID": category, "Sort": string(sort),
		"Products": products, "Count": len(products),
	})
}
