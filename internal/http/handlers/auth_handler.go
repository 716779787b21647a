package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/log"
	"github.com/saaltamirano2-glitch/NexoShop/internal/metrics"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Metrics *metrics.Shop
}

// ensureSID returns the durable session token, minting and persisting one for
// first-time visitors. This token doubles as the anonymous cart owner key.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = services.NewOwnerToken()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

// currentOwner resolves the cart owner key for this request.
func currentOwner(c *fiber.Ctx) domain.OwnerKey {
	u, _ := c.Locals("user").(*domain.User)
	return services.ResolveOwner(u, ensureSID(c))
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}
	pass := c.FormValue("password")

	_, merged, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}
	if merged && h.Metrics != nil {
		h.Metrics.CartsMerged.Inc()
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email, "cart_merged": merged})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, okE := validate.Email(c.FormValue("email"))
	name, okN := validate.Name(c.FormValue("name"))
	pass := c.FormValue("password")
	if !okE || !okN || !validate.Password(pass) {
		log.Security(c, "auth.register.fail", map[string]any{"reason": "bad_input"})
		return c.Status(400).Render("register", fiber.Map{"Err": "Check the email, name and password requirements"})
	}

	_, err := h.Auth.Register(sid, email, name, pass)
	if err == services.ErrEmailTaken {
		return c.Status(400).Render("register", fiber.Map{"Err": "That email is already registered"})
	}
	if err != nil {
		log.Error(c, "auth.register.fail", err, nil)
		return c.Status(500).Render("register", fiber.Map{"Err": "Could not create the account. Please retry."})
	}

	log.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie; the next visit mints a fresh anonymous token.
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
