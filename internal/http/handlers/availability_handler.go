package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

type AvailabilityHandler struct {
	Inv *services.InventoryService
}

func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if _, ok := validate.ID(productID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid productId",
		})
	}

	avail, err := h.Inv.CheckAvailability(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(avail)
}
