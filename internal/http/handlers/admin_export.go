package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tealeg/xlsx"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	applog "github.com/saaltamirano2-glitch/NexoShop/internal/log"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
)

// AdminExportHandler produces spreadsheet dumps for the back office.
type AdminExportHandler struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
	Cats   *repos.CategoryRepo
}

func sendXLSX(c *fiber.Ctx, file *xlsx.File, name string) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return file.Write(c.Response().BodyWriter())
}

// GET /admin/export/orders.xlsx
func (h *AdminExportHandler) ExportOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(1000)
	if err != nil {
		applog.Error(c, "admin.export.orders.fail", err, nil)
		return c.Status(500).SendString("could not export orders")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return c.Status(500).SendString("could not build spreadsheet")
	}

	header := sheet.AddRow()
	for _, hcell := range []string{"ID", "User", "Status", "Total", "Name", "City", "Payment", "Created"} {
		header.AddCell().SetValue(hcell)
	}
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.Total.String())
		row.AddCell().SetValue(o.FullName)
		row.AddCell().SetValue(o.City)
		row.AddCell().SetValue(string(o.PaymentMethod))
		row.AddCell().SetValue(o.CreatedAt)
	}

	applog.Audit(c, "admin.export.orders", map[string]any{"rows": len(orders)})
	return sendXLSX(c, file, "orders.xlsx")
}

// GET /admin/export/products.xlsx
func (h *AdminExportHandler) ExportProducts(c *fiber.Ctx) error {
	products, err := h.Prods.Search("", "", domain.SortNameAsc, 1000, 0)
	if err != nil {
		applog.Error(c, "admin.export.products.fail", err, nil)
		return c.Status(500).SendString("could not export products")
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return c.Status(500).SendString("could not build spreadsheet")
	}

	header := sheet.AddRow()
	for _, hcell := range []string{"ID", "Name", "Category", "Price", "Stock", "Featured", "Created"} {
		header.AddCell().SetValue(hcell)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.CategoryID)
		row.AddCell().SetValue(p.Price.String())
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Featured)
		row.AddCell().SetValue(p.CreatedAt)
	}

	applog.Audit(c, "admin.export.products", map[string]any{"rows": len(products)})
	return sendXLSX(c, file, "products.xlsx")
}
