package validate_test

import (
	"testing"

	"github.com/saaltamirano2-glitch/NexoShop/internal/validate"
)

func TestQty(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"0", 1},
		{"-5", 1},
		{"abc", 1},
		{"", 1},
		{"999", 50},
	}
	for _, tc := range cases {
		if got := validate.Qty(tc.in); got != tc.want {
			t.Errorf("Qty(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPhoneOptional(t *testing.T) {
	if _, ok := validate.Phone(""); !ok {
		t.Error("blank phone should pass")
	}
	if _, ok := validate.Phone("+57 (300) 123-4567"); !ok {
		t.Error("dialable phone should pass")
	}
	if _, ok := validate.Phone("call me maybe"); ok {
		t.Error("free text should fail")
	}
}

func TestCardFields(t *testing.T) {
	if got, ok := validate.CardNumber("4111 1111 1111 1111"); !ok || got != "4111111111111111" {
		t.Errorf("spaced card number should normalize, got %q ok=%v", got, ok)
	}
	if _, ok := validate.CardNumber("1234"); ok {
		t.Error("short card number should fail")
	}
	if _, ok := validate.CardExpiry("12/27"); !ok {
		t.Error("MM/YY should pass")
	}
	if _, ok := validate.CardExpiry("13/27"); ok {
		t.Error("month 13 should fail")
	}
	if _, ok := validate.CardCVV("123"); !ok {
		t.Error("3-digit cvv should pass")
	}
	if _, ok := validate.CardCVV("12"); ok {
		t.Error("2-digit cvv should fail")
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Passw0rd!", true},
		{"short1!A", true},
		{"alllowercase1!", false},
		{"NoDigitsHere!", false},
		{"NoSymbol123", false},
		{"Sh0r!t", false},
	}
	for _, tc := range cases {
		if got := validate.Password(tc.in); got != tc.want {
			t.Errorf("Password(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestQ(t *testing.T) {
	if _, ok := validate.Q("teclado"); !ok {
		t.Error("plain word should pass")
	}
	if _, ok := validate.Q("  "); ok {
		t.Error("blank query should fail")
	}
	if _, ok := validate.Q("<script>"); ok {
		t.Error("markup should fail")
	}
}

func TestIDAndStock(t *testing.T) {
	if _, ok := validate.ID("kbd-001"); !ok {
		t.Error("slug id should pass")
	}
	if _, ok := validate.ID("has space"); ok {
		t.Error("id with space should fail")
	}
	if n, ok := validate.Stock("12"); !ok || n != 12 {
		t.Errorf("Stock(12) = %d ok=%v", n, ok)
	}
	if _, ok := validate.Stock("-1"); ok {
		t.Error("negative stock should fail")
	}
}
