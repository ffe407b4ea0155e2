package quotation

import (
	"github.com/shopspring/decimal"
)

// IGVRate is the fixed Peruvian value-added tax applied when a quotation is
// tax-inclusive.
var IGVRate = decimal.NewFromFloat(0.18)

// DateLayout is the locale date format printed on documents.
const DateLayout = "02/01/2006"

// LineItem is one priced row of a quotation. Quantity and UnitPrice are nil
// while the row is still being typed; display totals treat nil as zero but
// submission rejects it.
type LineItem struct {
	LocalID     int              `json:"local_id"`
	Description string           `json:"description"`
	Unit        string           `json:"unit"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	ProductRef  *string          `json:"product_ref,omitempty"`
}

// LineTotal is quantity*price with nil fields read as zero.
func (it LineItem) LineTotal() decimal.Decimal {
	if it.Quantity == nil || it.UnitPrice == nil {
		return decimal.Zero
	}
	return it.Quantity.Mul(*it.UnitPrice)
}

// Quotation is the canonical aggregate: what gets numbered, persisted and
// rendered. Once persisted it is never mutated.
type Quotation struct {
	Number         string          `json:"number"`
	ClientName     string          `json:"client_name"`
	ClientRef      *string         `json:"client_ref,omitempty"`
	Date           string          `json:"date"`
	Items          []LineItem      `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	TaxIncluded    bool            `json:"tax_included"`
	DeliveryAtSite bool            `json:"delivery_at_site"`
}
