package invoice

import (
	"strconv"
	"strings"
	"time"
)

// LineItem is one quantity × rate charge on an invoice.
type LineItem struct {
	Description string
	Quantity    float64
	Rate        float64
}

func (it LineItem) Amount() float64 {
	return it.Quantity * it.Rate
}

// Invoice is the in-memory editing model. Totals are never stored; they are
// recomputed from the line items on every read.
type Invoice struct {
	InvoiceNumber string
	Date          string
	DueDate       string
	BillTo        string
	Items         []LineItem
	TaxPercent    float64
	AmountPaid    float64
	Terms         string
}

// New returns an invoice with a single blank line item, the minimum the
// editor ever shows.
func New() *Invoice {
	return &Invoice{Items: []LineItem{{Quantity: 1}}}
}

func (inv *Invoice) AddItem() {
	inv.Items = append(inv.Items, LineItem{Quantity: 1})
}

// RemoveItem deletes the item at index i. Removing the sole remaining row is
// a no-op, as is an out-of-range index.
func (inv *Invoice) RemoveItem(i int) {
	if len(inv.Items) <= 1 || i < 0 || i >= len(inv.Items) {
		return
	}
	inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
}

func (inv *Invoice) Subtotal() float64 {
	var sum float64
	for _, it := range inv.Items {
		sum += it.Amount()
	}
	return sum
}

func (inv *Invoice) TaxAmount() float64 {
	return inv.Subtotal() * inv.TaxPercent / 100
}

func (inv *Invoice) Total() float64 {
	return inv.Subtotal() + inv.TaxAmount()
}

func (inv *Invoice) BalanceDue() float64 {
	return inv.Total() - inv.AmountPaid
}

// ParseAmount reads a numeric form value, ignoring everything but digits and
// the decimal point. Unparseable input yields 0 so the form stays renderable.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// FileName names the downloadable artifact: invoice-{number|default}-{date}.pdf,
// with the date normalized to YYYY-MM-DD or left empty when absent or bad.
func FileName(inv *Invoice) string {
	num := inv.InvoiceNumber
	if num == "" {
		num = "default"
	}
	return "invoice-" + num + "-" + isoDate(inv.Date) + ".pdf"
}

func isoDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
