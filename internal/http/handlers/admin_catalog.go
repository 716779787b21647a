package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/nfnt/resize"
	"github.com/shopspring/decimal"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	applog "github.com/saaltamirano2-glitch/NexoShop/internal/log"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

const maxImageWidth = 800

// AdminCatalogHandler owns product and category CRUD.
type AdminCatalogHandler struct {
	Catalog  *services.CatalogService
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	MediaDir string
}

// ---------- Products ----------

// GET /admin/products
func (h *AdminCatalogHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Catalog.Search("", "", domain.SortNameAsc, 1, 200)
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	cats, _ := h.Catalog.ListCategories()
	return render(c, "admin_products", fiber.Map{"Products": products, "Categories": cats})
}

func (h *AdminCatalogHandler) productFromForm(c *fiber.Ctx, id string) (domain.Product, string) {
	name, okN := validate.Name(c.FormValue("name"))
	priceStr, okP := validate.Price(c.FormValue("price"))
	stock, okS := validate.Stock(c.FormValue("stock"))
	if !okN || !okP || !okS {
		return domain.Product{}, "invalid name, price or stock"
	}
	catID := c.FormValue("category_id")
	if catID != "" {
		if _, ok := validate.ID(catID); !ok {
			return domain.Product{}, "invalid category"
		}
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.IsNegative() {
		return domain.Product{}, "invalid price"
	}
	return domain.Product{
		ID:          id,
		CategoryID:  catID,
		Name:        name,
		Description: c.FormValue("description"),
		Price:       price,
		Stock:       stock,
		Featured:    c.FormValue("featured") == "on",
	}, ""
}

// POST /admin/products
func (h *AdminCatalogHandler) CreateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(400).SendString("invalid product id")
	}
	p, msg := h.productFromForm(c, id)
	if msg != "" {
		return c.Status(400).SendString(msg)
	}
	if file, err := c.FormFile("image"); err == nil {
		rel, err := h.saveProductImage(id, file)
		if err != nil {
			applog.Error(c, "admin.products.image.fail", err, map[string]any{"product": id})
			return c.Status(400).SendString("could not process image")
		}
		p.Image = rel
	}
	if err := h.Prods.Create(p); err != nil {
		applog.Error(c, "admin.products.create.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not create product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id
func (h *AdminCatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	existing, err := h.Prods.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	p, msg := h.productFromForm(c, id)
	if msg != "" {
		return c.Status(400).SendString(msg)
	}
	p.Image = existing.Image
	if file, err := c.FormFile("image"); err == nil {
		rel, err := h.saveProductImage(id, file)
		if err != nil {
			applog.Error(c, "admin.products.image.fail", err, map[string]any{"product": id})
			return c.Status(400).SendString("could not process image")
		}
		p.Image = rel
	}
	if err := h.Prods.Update(p); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not update product")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminCatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// saveProductImage decodes the upload, scales it down to the display width
// and stores it as jpeg under the media dir.
func (h *AdminCatalogHandler) saveProductImage(productID string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	img = resize.Thumbnail(maxImageWidth, maxImageWidth, img, resize.Lanczos3)

	rel := filepath.Join("products", productID, "main.jpg")
	full := filepath.Join(h.MediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// ---------- Categories ----------

// GET /admin/categories
func (h *AdminCatalogHandler) CategoriesPage(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats})
}

// POST /admin/categories
func (h *AdminCatalogHandler) CreateCategory(c *fiber.Ctx) error {
	id, okID := validate.ID(c.FormValue("id"))
	name, okN := validate.Name(c.FormValue("name"))
	if !okID || !okN {
		return c.Status(400).SendString("invalid id or name")
	}
	cat := domain.Category{ID: id, Name: name, Description: c.FormValue("description")}
	if err := h.Cats.Create(cat); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not create category")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/:id
func (h *AdminCatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	name, okN := validate.Name(c.FormValue("name"))
	if !okID || !okN {
		return c.Status(400).SendString("invalid id or name")
	}
	existing, err := h.Cats.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	// The form has no image field; keep the stored one.
	cat := domain.Category{ID: id, Name: name, Description: c.FormValue("description"), Image: existing.Image}
	if err := h.Cats.Update(cat); err != nil {
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not update category")
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}

// POST /admin/categories/:id/delete. Products in the category survive with
// no category; an FK rejection gets its own message so admins can tell it
// apart from a generic failure.
func (h *AdminCatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Cats.Delete(id); err != nil {
		if err == repos.ErrInUse {
			applog.Security(c, "admin.categories.delete.inuse", map[string]any{"category": id})
			return c.Status(409).SendString("category still has products attached")
		}
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": id})
		return c.Status(400).SendString("could not delete category")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}
