package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
)

func TestCategoryUpdateKeepsImage(t *testing.T) {
	app, db, _ := newTestApp(t)
	if err := repos.NewUserRepo(db).BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}
	cats := repos.NewCategoryRepo(db)

	before, err := cats.Get("audio")
	if err != nil {
		t.Fatal(err)
	}
	if before.Image == "" {
		t.Fatal("seed category should carry an image")
	}

	// the form has no image field; a rename must not wipe it
	resp := postForm(t, app, "/admin/categories/audio", "sid-admin",
		"name=Audio+y+Sonido&description=Sonido+para+casa")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}

	after, err := cats.Get("audio")
	if err != nil {
		t.Fatal(err)
	}
	if after.Name != "Audio y Sonido" {
		t.Fatalf("rename did not land, got %q", after.Name)
	}
	if after.Image != before.Image {
		t.Fatalf("update wiped the image: before=%q after=%q", before.Image, after.Image)
	}
}

func TestCategoryUpdateUnknownIs404(t *testing.T) {
	app, db, _ := newTestApp(t)
	if err := repos.NewUserRepo(db).BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}

	resp := postForm(t, app, "/admin/categories/nope-999", "sid-admin", "name=Nada")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAdminExports(t *testing.T) {
	app, db, _ := newTestApp(t)
	if err := repos.NewUserRepo(db).BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/admin/export/orders.xlsx", "/admin/export/products.xlsx"} {
		resp := get(t, app, path, "sid-admin")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
			t.Fatalf("%s: unexpected content type %q", path, ct)
		}
	}
}
