package invoice

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry, in millimeters on an A4 portrait page.
const (
	leftX  = 15.0
	rightX = 195.0

	logoW = 50.0
	logoH = 25.0

	lineHeight = 6.0

	billToWidth = 70.0
	descWidth   = 75.0
	termsWidth  = 150.0

	minBillToAdvance = 25.0
	minRowHeight     = 10.0

	topMargin     = 20.0
	rowBreakY     = 250.0
	summaryBreakY = 230.0
	termsBreakY   = 250.0
	footerY       = 285.0
)

// Renderer lays an invoice snapshot out onto one or more fixed-size pages.
// The pass is deterministic: same snapshot, same document.
type Renderer struct {
	CompanyName string
}

func NewRenderer(companyName string) *Renderer {
	return &Renderer{CompanyName: companyName}
}

// Render draws the full document. Page breaks for item rows are checked after
// the row is drawn, so a single very tall wrapped row may overflow past the
// threshold before the break is taken; that matches the editor's contract.
func (r *Renderer) Render(inv *Invoice) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	// Logo placeholder and company line.
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.5)
	pdf.Rect(leftX, 15, logoW, logoH, "D")
	y := logoH + 25
	pdf.Text(leftX, y, r.CompanyName)
	pdf.Line(leftX, y+5, rightX, y+5)

	// Invoice title and number.
	pdf.SetFontSize(24)
	pdf.Text(150, 30, "INVOICE")
	pdf.SetFontSize(12)
	pdf.Text(150, 38, "#"+inv.InvoiceNumber)

	// Bill-to block and dates.
	pdf.SetFontSize(11)
	y = logoH + 40
	pdf.Text(leftX, y, "Bill To:")
	billLines := pdf.SplitText(inv.BillTo, billToWidth)
	for i, line := range billLines {
		pdf.Text(leftX, y+8+float64(i)*lineHeight, line)
	}
	pdf.Text(150, y, "Date: "+inv.Date)
	pdf.Text(150, y+8, "Due Date: "+inv.DueDate)
	y += billToAdvance(len(billLines))

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(leftX, y-5, rightX, y-5)

	// Items table header.
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(leftX, y, rightX-leftX, 8, "F")
	pdf.Text(leftX, y+6, "Item")
	pdf.Text(95, y+6, "Qty")
	pdf.Text(115, y+6, "Rate")
	pdf.Text(155, y+6, "Amount")
	y += 8

	for idx, item := range inv.Items {
		descLines := pdf.SplitText(item.Description, descWidth)
		for li, line := range descLines {
			pdf.Text(leftX, y+6+float64(li)*lineHeight, line)
		}
		pdf.Text(95, y+6, FormatNumber(item.Quantity))
		pdf.Text(115, y+6, FormatCurrency(item.Rate))
		pdf.Text(155, y+6, FormatCurrency(item.Amount()))

		h := rowHeight(len(descLines))
		if idx < len(inv.Items)-1 {
			pdf.SetDrawColor(240, 240, 240)
			pdf.SetLineWidth(0.3)
			pdf.Line(leftX, y+h, rightX, y+h)
		}
		y += h

		if y > rowBreakY {
			pdf.AddPage()
			y = topMargin
		}
	}

	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.5)
	pdf.Line(leftX, y+5, rightX, y+5)
	y += 15

	// The summary breaks a little earlier than item rows so its five lines
	// stay together.
	if y > summaryBreakY {
		pdf.AddPage()
		y = topMargin
	}

	y = r.summaryRow(pdf, y, "Subtotal:", inv.Subtotal(), false)
	y = r.summaryRow(pdf, y, fmt.Sprintf("Tax (%s%%):", FormatInput(inv.TaxPercent)), inv.TaxAmount(), false)
	y = r.summaryRow(pdf, y, "Total:", inv.Total(), false)
	y = r.summaryRow(pdf, y, "Amount Paid:", inv.AmountPaid, false)
	y = r.summaryRow(pdf, y, "Balance Due:", inv.BalanceDue(), true)

	y += 15
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(leftX, y, rightX, y)
	y += 10

	if inv.Terms != "" {
		if y > termsBreakY {
			pdf.AddPage()
			y = topMargin
		}
		pdf.Text(leftX, y, "Terms:")
		for i, line := range pdf.SplitText(inv.Terms, termsWidth) {
			pdf.Text(leftX, y+8+float64(i)*lineHeight, line)
		}
	}

	r.stampFooters(pdf)
	return pdf
}

func (r *Renderer) summaryRow(pdf *gofpdf.Fpdf, y float64, label string, amount float64, emphasize bool) float64 {
	if emphasize {
		pdf.SetDrawColor(220, 220, 220)
		pdf.SetFillColor(250, 250, 250)
		pdf.Rect(125, y-5, 70, 10, "F")
	}
	pdf.Text(130, y, label)
	value := FormatCurrency(amount)
	pdf.Text(rightX-pdf.GetStringWidth(value), y, value)
	return y + 8
}

// stampFooters runs after every page exists so each one can name the total.
// It returns the stamps in page order.
func (r *Renderer) stampFooters(pdf *gofpdf.Fpdf) []string {
	total := pdf.PageCount()
	stamps := make([]string, 0, total)
	pdf.SetFontSize(8)
	pdf.SetTextColor(150, 150, 150)
	for i := 1; i <= total; i++ {
		pdf.SetPage(i)
		stamp := FooterStamp(i, total)
		pdf.Text(rightX-pdf.GetStringWidth(stamp), footerY, stamp)
		stamps = append(stamps, stamp)
	}
	return stamps
}

// FooterStamp is the per-page footer text.
func FooterStamp(page, total int) string {
	return fmt.Sprintf("Page %d of %d", page, total)
}

func billToAdvance(lines int) float64 {
	return math.Max(minBillToAdvance, float64(lines)*lineHeight+15)
}

func rowHeight(lines int) float64 {
	return math.Max(minRowHeight, float64(lines)*lineHeight+4)
}
