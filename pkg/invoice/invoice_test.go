package invoice

import (
	"testing"
)

func fixtureInvoice() *Invoice {
	return &Invoice{
		InvoiceNumber: "A1",
		Date:          "2024-03-05",
		DueDate:       "2024-03-19",
		BillTo:        "PT Example\nJl. Raya 1\nDenpasar",
		Items: []LineItem{
			{Description: "Design work", Quantity: 10, Rate: 200},
			{Description: "Hosting", Quantity: 1, Rate: 500},
		},
		TaxPercent: 10,
		AmountPaid: 1000,
	}
}

func TestInvoice_DerivedTotals(t *testing.T) {
	t.Parallel()

	inv := fixtureInvoice()
	if got := inv.Subtotal(); got != 2500 {
		t.Fatalf("Subtotal = %v, want 2500", got)
	}
	if got := inv.TaxAmount(); got != 250 {
		t.Fatalf("TaxAmount = %v, want 250", got)
	}
	if got := inv.Total(); got != 2750 {
		t.Fatalf("Total = %v, want 2750", got)
	}
	if got := inv.BalanceDue(); got != 1750 {
		t.Fatalf("BalanceDue = %v, want 1750", got)
	}
}

func TestInvoice_NegativeBalanceOnOverpay(t *testing.T) {
	t.Parallel()

	inv := fixtureInvoice()
	inv.AmountPaid = 3000
	if got := inv.BalanceDue(); got != -250 {
		t.Fatalf("BalanceDue = %v, want -250", got)
	}
}

func TestInvoice_NewHasOneBlankItem(t *testing.T) {
	t.Parallel()

	inv := New()
	if len(inv.Items) != 1 {
		t.Fatalf("New invoice should carry exactly one item, got %d", len(inv.Items))
	}
	if inv.Items[0].Quantity != 1 {
		t.Fatalf("blank item quantity = %v, want 1", inv.Items[0].Quantity)
	}
}

func TestInvoice_RemoveItem(t *testing.T) {
	t.Parallel()

	inv := New()
	inv.RemoveItem(0)
	if len(inv.Items) != 1 {
		t.Fatalf("removing the sole row must be a no-op")
	}

	inv.AddItem()
	inv.Items[1].Description = "keep"
	inv.RemoveItem(0)
	if len(inv.Items) != 1 || inv.Items[0].Description != "keep" {
		t.Fatalf("wrong row removed: %+v", inv.Items)
	}

	inv.RemoveItem(5)
	inv.RemoveItem(-1)
	if len(inv.Items) != 1 {
		t.Fatalf("out-of-range removal must be a no-op")
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"2500", 2500},
		{"2.5", 2.5},
		{"Rp 2.500", 2.5},
		{"1,000", 1000},
		{"abc", 0},
		{"", 0},
		{"12abc34", 1234},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	inv := fixtureInvoice()
	if got := FileName(inv); got != "invoice-A1-2024-03-05.pdf" {
		t.Fatalf("FileName = %q", got)
	}

	blank := New()
	if got := FileName(blank); got != "invoice-default-.pdf" {
		t.Fatalf("FileName = %q", got)
	}

	inv.Date = "garbage"
	if got := FileName(inv); got != "invoice-A1-.pdf" {
		t.Fatalf("FileName with bad date = %q", got)
	}
}
