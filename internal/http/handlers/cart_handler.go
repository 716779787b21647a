package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/saaltamirano2-glitch/NexoShop/internal/log"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(currentOwner(c))
	if err != nil {
		log.Error(c, "cart.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(currentOwner(c), productID, qty); err != nil {
		if err == services.ErrUnknownProduct {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
		}
		log.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not add to cart. Please retry."})
	}
	return c.Redirect("/cart")
}

// Update sets a line to an exact quantity; zero removes it.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if err != nil {
		return c.Status(400).SendString("invalid qty")
	}

	if err := h.Cart.SetQuantity(currentOwner(c), productID, qty); err != nil {
		log.Error(c, "cart.update.fail", err, map[string]any{"product": productID, "qty": qty})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update the cart. Please retry."})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(currentOwner(c), productID); err != nil {
		log.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update the cart. Please retry."})
	}
	return c.Redirect("/cart")
}
