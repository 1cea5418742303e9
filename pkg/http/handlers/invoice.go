package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/oarkflow/invoicer/pkg/auth"
	"github.com/oarkflow/invoicer/pkg/http/middlewares"
	"github.com/oarkflow/invoicer/pkg/invoice"
	"github.com/oarkflow/invoicer/pkg/utils"
)

func (h *Handler) InvoicePage(c *fiber.Ctx) error {
	sess, _ := c.Locals(middlewares.SessionKey).(*auth.Session)
	inv := invoice.New()
	return c.Render(utils.InvoiceTemplate, fiber.Map{
		"Title":    "Invoice",
		"Username": sessionUsername(sess),
		"Invoice":  inv,
	})
}

// SessionInfo backs the editor's periodic validity poll. The guard has
// already vouched for the session by the time this runs.
func (h *Handler) SessionInfo(c *fiber.Ctx) error {
	sess, _ := c.Locals(middlewares.SessionKey).(*auth.Session)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"authenticated": false,
		})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"username":      sess.Username,
		"expiresAt":     sess.ExpiresAt.Unix(),
		"timeLeft":      int64(time.Until(sess.ExpiresAt).Seconds()),
	})
}

// PostGeneratePDF renders the posted invoice snapshot and streams it back as
// an attachment; nothing is stored server-side.
func (h *Handler) PostGeneratePDF(c *fiber.Ctx) error {
	inv := parseInvoiceForm(c)

	pdf := h.renderer.Render(inv)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return h.renderErrorPage(c, fiber.StatusInternalServerError, "Document Error",
			"The invoice document could not be generated.",
			"Please check the invoice fields and try again.", utils.InvoiceURI)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", invoice.FileName(inv)))
	return c.Send(buf.Bytes())
}

// parseInvoiceForm builds the snapshot from the posted fields. Numeric
// parsing never fails hard; bad input becomes zero so the document always
// renders. At least one line item is guaranteed.
func parseInvoiceForm(c *fiber.Ctx) *invoice.Invoice {
	inv := &invoice.Invoice{
		InvoiceNumber: c.FormValue("invoiceNumber"),
		Date:          c.FormValue("date"),
		DueDate:       c.FormValue("dueDate"),
		BillTo:        c.FormValue("billTo"),
		TaxPercent:    invoice.ParseAmount(c.FormValue("tax")),
		AmountPaid:    invoice.ParseAmount(c.FormValue("amountPaid")),
		Terms:         c.FormValue("terms"),
	}

	args := c.Request().PostArgs()
	descs := args.PeekMulti("item_description")
	qtys := args.PeekMulti("item_quantity")
	rates := args.PeekMulti("item_rate")
	for i, desc := range descs {
		item := invoice.LineItem{Description: string(desc)}
		if i < len(qtys) {
			item.Quantity = invoice.ParseAmount(string(qtys[i]))
		}
		if i < len(rates) {
			item.Rate = invoice.ParseAmount(string(rates[i]))
		}
		inv.Items = append(inv.Items, item)
	}
	if len(inv.Items) == 0 {
		inv.Items = []invoice.LineItem{{Quantity: 1}}
	}
	return inv
}

func sessionUsername(sess *auth.Session) string {
	if sess == nil {
		return ""
	}
	return sess.Username
}
