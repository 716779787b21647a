package services_test

import (
	"testing"

	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
	"github.com/saaltamirano2-glitch/NexoShop/internal/services"
)

func TestCheckAvailabilityThresholds(t *testing.T) {
	db := memdb(t)
	prods := repos.NewProductRepo(db)
	svc := services.NewInventoryService(prods)

	cases := []struct {
		stock  int
		status string
	}{
		{25, "IN_STOCK"},
		{5, "IN_STOCK"},
		{4, "LOW_STOCK"},
		{1, "LOW_STOCK"},
		{0, "OUT_OF_STOCK"},
	}
	for _, tc := range cases {
		if err := prods.SetStock("kbd-001", tc.stock); err != nil {
			t.Fatal(err)
		}
		got, err := svc.CheckAvailability("kbd-001")
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != tc.status || got.Qty != tc.stock {
			t.Fatalf("stock %d: want %s, got %+v", tc.stock, tc.status, got)
		}
	}
}

func TestCheckAvailabilityUnknownProduct(t *testing.T) {
	db := memdb(t)
	svc := services.NewInventoryService(repos.NewProductRepo(db))

	got, err := svc.CheckAvailability("nope-999")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "OUT_OF_STOCK" || got.Qty != 0 {
		t.Fatalf("unknown product should read out of stock, got %+v", got)
	}
}
