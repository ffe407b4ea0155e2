package quotation

import "github.com/shopspring/decimal"

// Totals derives subtotal, IGV and total from the item list. Pure: nil
// quantity/price count as zero, an empty list yields 0/0/0, and recomputing
// from the same items always returns the same values.
func Totals(items []LineItem, taxIncluded bool) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	subtotal = subtotal.Round(2)
	if taxIncluded {
		tax = subtotal.Mul(IGVRate).Round(2)
	} else {
		tax = decimal.Zero
	}
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

// Recalculate refreshes the derived totals on the aggregate in place.
func (q *Quotation) Recalculate() {
	q.Subtotal, q.Tax, q.Total = Totals(q.Items, q.TaxIncluded)
}
