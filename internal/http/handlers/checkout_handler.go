package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/log"
	"github.com/saaltamirano2-glitch/NexoShop/internal/metrics"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
)

// CheckoutHandler walks a signed-in user through the linear checkout flow.
// All routes sit behind RequireUser; the empty-cart guard applies on entry
// but never once the flow reached success.
type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Metrics  *metrics.Shop
}

func (h *CheckoutHandler) user(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// Show renders the current step of the flow.
func (h *CheckoutHandler) Show(c *fiber.Ctx) error {
	u := h.user(c)
	flow, err := h.Checkout.Flow(u.ID)
	if err != nil {
		return c.Redirect("/login")
	}

	cv, err := h.Cart.View(domain.UserOwner(u.ID))
	if err != nil {
		log.Error(c, "checkout.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}

	if flow.Step == services.StepSuccess {
		if cv.Empty() {
			return c.Redirect("/checkout/success")
		}
		// Cart was refilled after a completed checkout; start over.
		h.Checkout.Reset(u.ID)
		flow, _ = h.Checkout.Flow(u.ID)
	}

	if cv.Empty() {
		return c.Redirect("/cart")
	}

	switch flow.Step {
	case services.StepPayment:
		return render(c, "checkout_payment", fiber.Map{"Flow": flow, "Cart": cv})
	case services.StepConfirmation:
		return render(c, "checkout_confirm", fiber.Map{"Flow": flow, "Cart": cv})
	default:
		return render(c, "checkout_shipping", fiber.Map{"Flow": flow, "Cart": cv, "Err": ""})
	}
}

func (h *CheckoutHandler) SubmitShipping(c *fiber.Ctx) error {
	u := h.user(c)
	flow, err := h.Checkout.Flow(u.ID)
	if err != nil {
		return c.Redirect("/login")
	}

	in := services.ShippingInfo{
		FullName: c.FormValue("full_name"),
		Address:  c.FormValue("address"),
		City:     c.FormValue("city"),
		Phone:    c.FormValue("phone"),
		Notes:    c.FormValue("notes"),
	}
	if err := flow.SubmitShipping(in); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			log.Security(c, "checkout.shipping.invalid", map[string]any{"error": err.Error()})
			cv, _ := h.Cart.View(domain.UserOwner(u.ID))
			return c.Status(400).Render("checkout_shipping", fiber.Map{
				"Flow": flow, "Cart": cv, "Err": "Completa nombre, direccion y ciudad",
			})
		}
		return c.Redirect("/checkout")
	}
	return c.Redirect("/checkout")
}

func (h *CheckoutHandler) SubmitPayment(c *fiber.Ctx) error {
	u := h.user(c)
	flow, err := h.Checkout.Flow(u.ID)
	if err != nil {
		return c.Redirect("/login")
	}

	in := services.PaymentInfo{
		Method:     domain.PaymentMethod(c.FormValue("payment_method")),
		CardNumber: c.FormValue("card_number"),
		CardExpiry: c.FormValue("card_expiry"),
		CardCVV:    c.FormValue("card_cvv"),
		CardHolder: c.FormValue("card_holder"),
	}
	if err := flow.SubmitPayment(in); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			log.Security(c, "checkout.payment.invalid", map[string]any{"error": err.Error()})
			cv, _ := h.Cart.View(domain.UserOwner(u.ID))
			return c.Status(400).Render("checkout_payment", fiber.Map{
				"Flow": flow, "Cart": cv, "Err": "Revisa el metodo de pago y los datos de la tarjeta",
			})
		}
		return c.Redirect("/checkout")
	}
	return c.Redirect("/checkout")
}

func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	u := h.user(c)
	if flow, err := h.Checkout.Flow(u.ID); err == nil {
		_ = flow.Back()
	}
	return c.Redirect("/checkout")
}

func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	u := h.user(c)
	orderID, err := h.Checkout.Submit(u.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartEmpty):
			return c.Redirect("/cart")
		case errors.Is(err, services.ErrFlowStep):
			return c.Redirect("/checkout")
		}
		if h.Metrics != nil {
			h.Metrics.CheckoutsFailed.Inc()
		}
		log.Error(c, "checkout.submit.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not place your order. Please retry."})
	}

	if h.Metrics != nil {
		h.Metrics.OrdersPlaced.Inc()
	}
	log.Audit(c, "checkout.submit", map[string]any{"order_id": orderID})
	return c.Redirect("/checkout/success")
}

// Success is the terminal page. It never bounces on an empty cart: the cart
// was just cleared by the submission that got the user here.
func (h *CheckoutHandler) Success(c *fiber.Ctx) error {
	u := h.user(c)
	flow, err := h.Checkout.Flow(u.ID)
	if err != nil || flow.Step != services.StepSuccess {
		return c.Redirect("/checkout")
	}
	return render(c, "checkout_success", fiber.Map{"OrderID": flow.OrderID})
}
