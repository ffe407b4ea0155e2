package quotation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestTotalsWithIGV(t *testing.T) {
	items := []LineItem{
		{LocalID: 1, Description: "Arena gruesa", Unit: "m³", Quantity: dec("2"), UnitPrice: dec("50")},
	}
	subtotal, tax, total := Totals(items, true)

	assert.True(t, subtotal.Equal(decimal.RequireFromString("100")), "subtotal = %s", subtotal)
	assert.True(t, tax.Equal(decimal.RequireFromString("18")), "tax = %s", tax)
	assert.True(t, total.Equal(decimal.RequireFromString("118")), "total = %s", total)
}

func TestTotalsWithoutIGV(t *testing.T) {
	items := []LineItem{
		{LocalID: 1, Description: "Arena gruesa", Unit: "m³", Quantity: dec("2"), UnitPrice: dec("50")},
	}
	subtotal, tax, total := Totals(items, false)

	assert.True(t, tax.IsZero(), "tax = %s", tax)
	assert.True(t, total.Equal(subtotal))
	assert.True(t, total.Equal(decimal.RequireFromString("100")))
}

func TestTotalsEmptyList(t *testing.T) {
	subtotal, tax, total := Totals(nil, true)
	assert.True(t, subtotal.IsZero())
	assert.True(t, tax.IsZero())
	assert.True(t, total.IsZero())
}

func TestTotalsMissingFieldsCountAsZero(t *testing.T) {
	items := []LineItem{
		{LocalID: 1, Description: "Cemento", Quantity: dec("3"), UnitPrice: dec("25.50")},
		{LocalID: 2, Description: "sin cantidad", UnitPrice: dec("99")},
		{LocalID: 3, Description: "sin precio", Quantity: dec("4")},
	}
	subtotal, _, _ := Totals(items, false)
	assert.True(t, subtotal.Equal(decimal.RequireFromString("76.50")), "subtotal = %s", subtotal)
}

func TestTotalsRoundsTaxToCurrencyPrecision(t *testing.T) {
	items := []LineItem{
		{LocalID: 1, Description: "x", Quantity: dec("1"), UnitPrice: dec("0.10")},
	}
	_, tax, total := Totals(items, true)
	// 0.10 * 0.18 = 0.018 -> 0.02
	assert.True(t, tax.Equal(decimal.RequireFromString("0.02")), "tax = %s", tax)
	assert.True(t, total.Equal(decimal.RequireFromString("0.12")), "total = %s", total)
}

func TestTotalsIdempotent(t *testing.T) {
	items := []LineItem{
		{LocalID: 1, Description: "Fierro 1/2", Quantity: dec("7"), UnitPrice: dec("32.90")},
		{LocalID: 2, Description: "Alambre", Quantity: dec("1.5"), UnitPrice: dec("12")},
	}
	s1, t1, tt1 := Totals(items, true)
	s2, t2, tt2 := Totals(items, true)
	require.True(t, s1.Equal(s2))
	require.True(t, t1.Equal(t2))
	require.True(t, tt1.Equal(tt2))
	assert.True(t, tt1.Equal(s1.Add(t1)))
}
