package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
)

func seedOrder(t *testing.T, orders *repos.OrderRepo, id, productID string, qty int) {
	t.Helper()
	err := orders.Create(domain.Order{
		ID: id, UserID: "u-demo", Status: domain.OrderPending,
		Total:    decimal.RequireFromString("55.00"),
		FullName: "Ana Perez", Address: "Calle 1", City: "Bogota",
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatal(err)
	}
	err = orders.InsertItem(domain.OrderItem{
		ID: id + "-l1", OrderID: id, ProductID: productID,
		ProductName: "Teclado", Price: decimal.RequireFromString("55.00"),
		Qty: qty, Subtotal: decimal.RequireFromString("55.00"),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCompleteOrderDecrementsStock(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	prods := repos.NewProductRepo(db)
	svc := services.NewFulfillmentService(orders, prods)

	// seeded kbd-001 has stock 8
	seedOrder(t, orders, "ord-1", "kbd-001", 5)
	if err := svc.CompleteOrder("ord-1"); err != nil {
		t.Fatal(err)
	}

	qty, err := prods.Stock("kbd-001")
	if err != nil {
		t.Fatal(err)
	}
	if qty != 3 {
		t.Fatalf("want stock 3, got %d", qty)
	}
	o, _, err := orders.Get("ord-1")
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderDelivered {
		t.Fatalf("want delivered, got %s", o.Status)
	}
}

func TestCompleteOrderClampsAtZero(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	prods := repos.NewProductRepo(db)
	svc := services.NewFulfillmentService(orders, prods)

	if err := prods.SetStock("kbd-001", 3); err != nil {
		t.Fatal(err)
	}
	seedOrder(t, orders, "ord-1", "kbd-001", 5)
	if err := svc.CompleteOrder("ord-1"); err != nil {
		t.Fatal(err)
	}
	if qty, _ := prods.Stock("kbd-001"); qty != 0 {
		t.Fatalf("oversold line should clamp stock to 0, got %d", qty)
	}
}

func TestCompleteOrderSkipsDeletedProducts(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	prods := repos.NewProductRepo(db)
	svc := services.NewFulfillmentService(orders, prods)

	seedOrder(t, orders, "ord-1", "kbd-001", 2)
	if err := prods.Delete("kbd-001"); err != nil {
		t.Fatal(err)
	}

	// the line survives with a NULL product and fulfillment still delivers
	if err := svc.CompleteOrder("ord-1"); err != nil {
		t.Fatal(err)
	}
	o, items, err := orders.Get("ord-1")
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderDelivered {
		t.Fatalf("want delivered, got %s", o.Status)
	}
	if len(items) != 1 || items[0].ProductName != "Teclado" {
		t.Fatalf("snapshot line should outlive the product, got %+v", items)
	}
}

func TestTerminalOrdersRejectChanges(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	svc := services.NewFulfillmentService(orders, repos.NewProductRepo(db))

	seedOrder(t, orders, "ord-1", "kbd-001", 1)
	if err := svc.CompleteOrder("ord-1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.CompleteOrder("ord-1"); err != services.ErrTerminalStatus {
		t.Fatalf("delivered order should reject, got %v", err)
	}
	if err := svc.SetStatus("ord-1", domain.OrderShipped); err != services.ErrTerminalStatus {
		t.Fatalf("delivered order should reject status changes, got %v", err)
	}
	// stock came off exactly once
	if qty, _ := repos.NewProductRepo(db).Stock("kbd-001"); qty != 7 {
		t.Fatalf("want stock 7 after single fulfillment, got %d", qty)
	}
}

func TestSetStatus(t *testing.T) {
	db := memdb(t)
	orders := repos.NewOrderRepo(db)
	prods := repos.NewProductRepo(db)
	svc := services.NewFulfillmentService(orders, prods)

	seedOrder(t, orders, "ord-1", "kbd-001", 2)

	if err := svc.SetStatus("ord-1", "bogus"); err != services.ErrBadStatus {
		t.Fatalf("want ErrBadStatus, got %v", err)
	}

	if err := svc.SetStatus("ord-1", domain.OrderShipped); err != nil {
		t.Fatal(err)
	}
	if qty, _ := prods.Stock("kbd-001"); qty != 8 {
		t.Fatalf("non-delivered transitions must not touch stock, got %d", qty)
	}

	// delivered routes through fulfillment
	if err := svc.SetStatus("ord-1", domain.OrderDelivered); err != nil {
		t.Fatal(err)
	}
	if qty, _ := prods.Stock("kbd-001"); qty != 6 {
		t.Fatalf("want stock 6 after delivery, got %d", qty)
	}
}
