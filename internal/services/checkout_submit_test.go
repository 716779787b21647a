package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
)

func newCheckout(t *testing.T) (*services.CheckoutService, *repos.OrderRepo, *services.CartService, *repos.ProductRepo) {
	t.Helper()
	db := memdb(t)
	prods := repos.NewProductRepo(db)
	cartSvc := services.NewCartService(repos.NewCartRepo(db), prods)
	orders := repos.NewOrderRepo(db)
	return services.NewCheckoutService(cartSvc, orders), orders, cartSvc, prods
}

func confirmFlow(t *testing.T, svc *services.CheckoutService, userID string) {
	t.Helper()
	f, err := svc.Flow(userID)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SubmitShipping(shipping()); err != nil {
		t.Fatal(err)
	}
	if err := f.SubmitPayment(services.PaymentInfo{Method: domain.PaymentCash}); err != nil {
		t.Fatal(err)
	}
}

func TestSubmitCreatesOrderSnapshot(t *testing.T) {
	svc, orders, cartSvc, prods := newCheckout(t)

	if err := prods.Create(domain.Product{ID: "p-a", Name: "Producto A", Price: decimal.RequireFromString("10.00"), Stock: 10}); err != nil {
		t.Fatal(err)
	}
	if err := prods.Create(domain.Product{ID: "p-b", Name: "Producto B", Price: decimal.RequireFromString("5.50"), Stock: 5}); err != nil {
		t.Fatal(err)
	}

	owner := domain.UserOwner("u-demo")
	if err := cartSvc.Add(owner, "p-a", 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(owner, "p-b", 1); err != nil {
		t.Fatal(err)
	}

	confirmFlow(t, svc, "u-demo")
	oid, err := svc.Submit("u-demo")
	if err != nil {
		t.Fatal(err)
	}
	if oid == "" {
		t.Fatal("no order id")
	}

	o, items, err := orders.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderPending {
		t.Fatalf("new order should be pending, got %s", o.Status)
	}
	if want := decimal.RequireFromString("25.50"); !o.Total.Equal(want) {
		t.Fatalf("want total %s, got %s", want, o.Total)
	}
	if o.FullName != "Ana Perez" || o.PaymentMethod != domain.PaymentCash {
		t.Fatalf("shipping/payment not carried onto the order: %+v", o)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 snapshot lines, got %d", len(items))
	}
	sum := decimal.Zero
	for _, it := range items {
		if !it.Subtotal.Equal(it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))) {
			t.Fatalf("line subtotal mismatch: %+v", it)
		}
		sum = sum.Add(it.Subtotal)
	}
	if !sum.Equal(o.Total) {
		t.Fatalf("order total %s should equal sum of lines %s", o.Total, sum)
	}

	// cart is cleared and the flow landed on success
	cv, err := cartSvc.View(owner)
	if err != nil {
		t.Fatal(err)
	}
	if !cv.Empty() {
		t.Fatalf("cart should be cleared after submit, got %+v", cv.Items)
	}
	f, _ := svc.Flow("u-demo")
	if f.Step != services.StepSuccess || f.OrderID != oid {
		t.Fatalf("flow should record success, got step=%s order=%s", f.Step, f.OrderID)
	}

	// submitting does not touch stock; fulfillment does that later
	if qty, _ := prods.Stock("p-a"); qty != 10 {
		t.Fatalf("stock must not change at submit, got %d", qty)
	}
}

// A line insert failing mid-submit must not clear the cart or advance the
// flow; the already-written header stays (there is no wrapping transaction).
func TestSubmitPartialFailureKeepsCart(t *testing.T) {
	db := memdb(t)
	prods := repos.NewProductRepo(db)
	cartSvc := services.NewCartService(repos.NewCartRepo(db), prods)
	svc := services.NewCheckoutService(cartSvc, repos.NewOrderRepo(db))

	owner := domain.UserOwner("u-demo")
	if err := cartSvc.Add(owner, "spk-001", 1); err != nil {
		t.Fatal(err)
	}
	confirmFlow(t, svc, "u-demo")

	// break line inserts; the header write still succeeds
	if _, err := db.Exec(`ALTER TABLE order_items RENAME TO order_items_broken`); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Submit("u-demo")
	if !errors.Is(err, services.ErrOrderPartial) {
		t.Fatalf("want ErrOrderPartial, got %v", err)
	}

	var headers int
	if err := db.Get(&headers, `SELECT COUNT(*) FROM orders WHERE user_id = 'u-demo'`); err != nil {
		t.Fatal(err)
	}
	if headers != 1 {
		t.Fatalf("the order header should survive, got %d rows", headers)
	}

	cv, err := cartSvc.View(owner)
	if err != nil {
		t.Fatal(err)
	}
	if cv.Empty() {
		t.Fatal("cart must not clear on a failed submit")
	}
	f, _ := svc.Flow("u-demo")
	if f.Step != services.StepConfirmation {
		t.Fatalf("flow should stay on confirmation, got %s", f.Step)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	svc, _, _, _ := newCheckout(t)
	confirmFlow(t, svc, "u-demo")
	if _, err := svc.Submit("u-demo"); err != services.ErrCartEmpty {
		t.Fatalf("want ErrCartEmpty, got %v", err)
	}
}

func TestSubmitRequiresConfirmationStep(t *testing.T) {
	svc, _, cartSvc, _ := newCheckout(t)
	if err := cartSvc.Add(domain.UserOwner("u-demo"), "spk-001", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit("u-demo"); err != services.ErrFlowStep {
		t.Fatalf("want ErrFlowStep, got %v", err)
	}
}

func TestFlowRequiresSignIn(t *testing.T) {
	svc, _, _, _ := newCheckout(t)
	if _, err := svc.Flow(""); err != services.ErrNotSignedIn {
		t.Fatalf("want ErrNotSignedIn, got %v", err)
	}
}

func TestResetDiscardsFlow(t *testing.T) {
	svc, _, _, _ := newCheckout(t)
	f, err := svc.Flow("u-demo")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SubmitShipping(shipping()); err != nil {
		t.Fatal(err)
	}
	svc.Reset("u-demo")
	f2, _ := svc.Flow("u-demo")
	if f2.Step != services.StepShipping || f2.Shipping.FullName != "" {
		t.Fatalf("reset should hand back a fresh flow, got %+v", f2)
	}
}
