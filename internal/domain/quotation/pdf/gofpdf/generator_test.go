package gofpdf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wm-ferretero/go_backend/internal/domain/quotation"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleQuotation(items int) quotation.Quotation {
	q := quotation.Quotation{
		Number:      "COT-000042",
		ClientName:  "ACME S.A.C.",
		Date:        "15/08/2026",
		TaxIncluded: true,
	}
	for i := 0; i < items; i++ {
		q.Items = append(q.Items, quotation.LineItem{
			LocalID:     i + 1,
			Description: fmt.Sprintf("Arena gruesa lote %d", i+1),
			Unit:        "m³",
			Quantity:    dec("2"),
			UnitPrice:   dec("50"),
		})
	}
	q.Recalculate()
	return q
}

func TestGenerateProducesPDF(t *testing.T) {
	doc, err := New(Options{}).Generate(sampleQuotation(3))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(doc.Bytes[:5]), "%PDF-"))
	assert.Equal(t, "Cotizacion-COT-000042.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.MIME)
	assert.Equal(t, 1, doc.Pages)
}

func TestGenerateZeroItemsStillRenders(t *testing.T) {
	q := sampleQuotation(0)
	require.True(t, q.Total.IsZero())

	doc, err := New(Options{}).Generate(q)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
	assert.Equal(t, 1, doc.Pages)
}

func TestGeneratePreviewFilename(t *testing.T) {
	q := sampleQuotation(1)
	q.Number = ""
	doc, err := New(Options{}).Generate(q)
	require.NoError(t, err)
	assert.Equal(t, "Cotizacion-BORRADOR.pdf", doc.Filename)
}

func TestGeneratePaginatesLongTables(t *testing.T) {
	doc, err := New(Options{}).Generate(sampleQuotation(60))
	require.NoError(t, err)
	assert.Greater(t, doc.Pages, 1)
}

func TestGenerateLongClientNameDoesNotFail(t *testing.T) {
	q := sampleQuotation(25)
	q.ClientName = strings.Repeat("CONSORCIO MINERO DEL SUR SOCIEDAD ANÓNIMA CERRADA ", 4)
	short, err := New(Options{}).Generate(sampleQuotation(25))
	require.NoError(t, err)
	long, err := New(Options{}).Generate(q)
	require.NoError(t, err)
	// the wrapped client name eats table space, so the same items need at
	// least as many pages
	assert.GreaterOrEqual(t, long.Pages, short.Pages)
}

func TestGenerateMissingAssetsAreNotFatal(t *testing.T) {
	g := New(Options{LogoPath: "testdata/no-such-logo.png", SignaturePath: "testdata/no-such-firma.png"})
	doc, err := g.Generate(sampleQuotation(2))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Bytes)
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"118":    "S/ 118.00",
		"100":    "S/ 100.00",
		"1234.5": "S/ 1,234.50",
		"0":      "S/ 0.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatCurrency(decimal.RequireFromString(in)), "input %s", in)
	}
}

func TestDisplayQuantityIsAsEntered(t *testing.T) {
	assert.Equal(t, "2", displayQuantity(quotation.LineItem{Quantity: dec("2")}))
	assert.Equal(t, "1.5", displayQuantity(quotation.LineItem{Quantity: dec("1.5")}))
	assert.Empty(t, displayQuantity(quotation.LineItem{}))
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "corto", trim("corto", 10))
	long := strings.Repeat("x", 60)
	assert.Equal(t, 48, len([]rune(trim(long, 48))))
}
