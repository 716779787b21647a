package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	applog "github.com/saaltamirano2-glitch/NexoShop/internal/log"
	"github.com/saaltamirano2-glitch/NexoShop/internal/metrics"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

type AdminHandler struct {
	Orders  *repos.OrderRepo
	Fulfill *services.FulfillmentService
	Users   *repos.UserRepo
	Metrics *metrics.Shop
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Orders.Stats()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": stats})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// GET /admin/orders/:id
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, items, err := h.Orders.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "admin_order", fiber.Map{"Order": o, "Items": items})
}

// POST /admin/orders/:id/status applies a manual transition. Setting delivered runs
// fulfillment, so stock comes off exactly once.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := domain.OrderStatus(c.FormValue("status"))
	if !ok || status == "" {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Fulfill.SetStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id, "status": status})
		return c.Status(400).SendString("could not update status")
	}
	if status == domain.OrderDelivered && h.Metrics != nil {
		h.Metrics.OrdersFulfilled.Inc()
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// POST /admin/orders/:id/complete is the fulfillment action: decrement stock
// per line (clamped at zero) and mark the order delivered.
func (h *AdminHandler) CompleteOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Fulfill.CompleteOrder(id); err != nil {
		applog.Error(c, "admin.orders.complete.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not complete order")
	}
	if h.Metrics != nil {
		h.Metrics.OrdersFulfilled.Inc()
	}
	applog.Audit(c, "admin.orders.complete", map[string]any{"order_id": id})
	return c.Redirect("/admin/orders")
}

// GET /admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}
