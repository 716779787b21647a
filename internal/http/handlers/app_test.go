package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"github.com/saaltamirano2-glitch/NexoShop/internal/config"
	"github.com/saaltamirano2-glitch/NexoShop/internal/http/handlers"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
)

// newTestApp wires the real handler stack over a seeded in-memory db.
// CSRF and rate limiting stay out; they get exercised against prod config.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	userRepo := repos.NewUserRepo(db)
	cartRepo := repos.NewCartRepo(db)
	auth := &services.AuthService{Users: userRepo, Carts: cartRepo}
	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir()}, auth, nil)

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	authH := &handlers.AuthHandler{Auth: auth}
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)

	app.Get("/api/v1/availability", deps.AvailabilityHandler.Check)

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)

	co := app.Group("/checkout", handlers.RequireUser(auth))
	co.Get("/", deps.CheckoutHandler.Show)
	co.Post("/shipping", deps.CheckoutHandler.SubmitShipping)
	co.Post("/payment", deps.CheckoutHandler.SubmitPayment)
	co.Post("/back", deps.CheckoutHandler.Back)
	co.Post("/submit", deps.CheckoutHandler.Submit)
	co.Get("/success", deps.CheckoutHandler.Success)

	app.Get("/order/:id", deps.OrderHandler.View)
	app.Get("/orders", handlers.RequireUser(auth), deps.OrderHandler.History)

	admin := app.Group("/admin", handlers.RequireAdmin(auth))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Get("/categories", deps.AdminCatalogHandler.CategoriesPage)
	admin.Post("/categories/:id", deps.AdminCatalogHandler.UpdateCategory)
	admin.Get("/export/orders.xlsx", deps.AdminExportHandler.ExportOrders)
	admin.Get("/export/products.xlsx", deps.AdminExportHandler.ExportProducts)

	return app, db, auth
}

func get(t *testing.T, app *fiber.App, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func postForm(t *testing.T, app *fiber.App, path, sid, form string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
