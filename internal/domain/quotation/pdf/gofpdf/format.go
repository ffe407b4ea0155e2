package gofpdf

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var esPE = message.NewPrinter(language.MustParse("es-PE"))

var pen = currency.MustParseISO("PEN")

// formatCurrency renders "S/ 1,234.56": the es-PE formatter's native PEN code
// replaced by the local two-character symbol, always two decimals.
func formatCurrency(v decimal.Decimal) string {
	f, _ := v.Float64()
	s := esPE.Sprintf("%v %.2f", pen, f)
	return strings.Replace(s, pen.String(), "S/", 1)
}
