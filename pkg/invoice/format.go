package invoice

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// The rendered document and the edit form format numbers differently on
// purpose: the document uses full id-ID grouping with the currency symbol,
// the form echoes raw values so they stay editable. Keep these separate.

var printer = message.NewPrinter(language.Indonesian)

// FormatCurrency renders an amount for the document: grouped id-ID digits,
// zero decimal places, fixed Rp symbol.
func FormatCurrency(amount float64) string {
	return "Rp " + FormatNumber(amount)
}

// FormatNumber renders a bare grouped number for the document.
func FormatNumber(amount float64) string {
	return printer.Sprintf("%d", int64(math.Round(amount)))
}

// FormatInput echoes a numeric value back into an edit field: no grouping,
// no symbol, "0" for zero.
func FormatInput(amount float64) string {
	if amount == 0 {
		return "0"
	}
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
