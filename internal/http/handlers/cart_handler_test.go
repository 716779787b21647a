package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestCartAddAndView(t *testing.T) {
	app, _, _ := newTestApp(t)
	sid := "sid-cart-test"

	resp := postForm(t, app, "/cart", sid, "productId=spk-001&qty=2")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after add, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/cart" {
		t.Fatalf("expected /cart redirect, got %q", loc)
	}

	resp = get(t, app, "/cart", sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if page := body(t, resp); !strings.Contains(page, "Parlante Bluetooth Nexo Mini") {
		t.Fatal("cart page should list the added product")
	}
}

func TestCartAddUnknownProductReturns404(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postForm(t, app, "/cart", "sid-x", "productId=nope-999&qty=1")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCartUpdateToZeroRemovesLine(t *testing.T) {
	app, _, _ := newTestApp(t)
	sid := "sid-cart-zero"

	_ = postForm(t, app, "/cart", sid, "productId=spk-001&qty=2")
	resp := postForm(t, app, "/cart/update", sid, "productId=spk-001&qty=0")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}

	resp = get(t, app, "/cart", sid)
	if page := body(t, resp); strings.Contains(page, "Parlante Bluetooth Nexo Mini") {
		t.Fatal("line should be gone after setting qty to 0")
	}
}

func TestCartRejectsMissingProductID(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := postForm(t, app, "/cart", "sid-x", "qty=1")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
