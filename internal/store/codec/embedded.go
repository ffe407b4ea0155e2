// Package codec maps the canonical quotation aggregate to and from the two
// coexisting storage shapes: the embedded record with inline items, and the
// normalized parent plus child rows joined against master data.
package codec

import (
	"time"

	"github.com/shopspring/decimal"

	"wm-ferretero/go_backend/internal/domain/quotation"
)

// Placeholders substituted when a referenced master record was deleted after
// the quotation was issued. Reprints must never fail because of that.
const (
	PlaceholderClient  = "(cliente eliminado)"
	PlaceholderProduct = "(producto eliminado)"
)

// EmbeddedItem is one element of the items JSON column.
type EmbeddedItem struct {
	ID             int              `json:"id"`
	Descripcion    string           `json:"descripcion"`
	Unidad         string           `json:"unidad"`
	Cantidad       *decimal.Decimal `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precioUnitario"`
	ProductoID     *string          `json:"producto_id"`
}

// EmbeddedRecord is the cotizaciones row of the embedded shape: every field
// of the aggregate inline, the client as plain text, no foreign keys.
// id and created_at stay out of insert payloads so the table defaults apply.
type EmbeddedRecord struct {
	ID               string          `json:"id,omitempty"`
	CreatedAt        time.Time       `json:"created_at,omitzero"`
	NumeroCotizacion string          `json:"numero_cotizacion"`
	Cliente          string          `json:"cliente"`
	Fecha            string          `json:"fecha"`
	Items            []EmbeddedItem  `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	IGV              decimal.Decimal `json:"igv"`
	Total            decimal.Decimal `json:"total"`
	IncluirIGV       bool            `json:"incluir_igv"`
	EntregaEnObra    bool            `json:"entrega_en_obra"`
}

// EncodeEmbedded freezes a canonical quotation into the embedded row.
func EncodeEmbedded(q quotation.Quotation) EmbeddedRecord {
	rec := EmbeddedRecord{
		NumeroCotizacion: q.Number,
		Cliente:          q.ClientName,
		Fecha:            q.Date,
		Items:            make([]EmbeddedItem, 0, len(q.Items)),
		Subtotal:         q.Subtotal,
		IGV:              q.Tax,
		Total:            q.Total,
		IncluirIGV:       q.TaxIncluded,
		EntregaEnObra:    q.DeliveryAtSite,
	}
	for _, it := range q.Items {
		rec.Items = append(rec.Items, EmbeddedItem{
			ID:             it.LocalID,
			Descripcion:    it.Description,
			Unidad:         it.Unit,
			Cantidad:       it.Quantity,
			PrecioUnitario: it.UnitPrice,
			ProductoID:     it.ProductRef,
		})
	}
	return rec
}

// DecodeEmbedded rebuilds the canonical quotation from an embedded row.
func DecodeEmbedded(rec EmbeddedRecord) quotation.Quotation {
	q := quotation.Quotation{
		Number:         rec.NumeroCotizacion,
		ClientName:     rec.Cliente,
		Date:           rec.Fecha,
		Items:          make([]quotation.LineItem, 0, len(rec.Items)),
		Subtotal:       rec.Subtotal,
		Tax:            rec.IGV,
		Total:          rec.Total,
		TaxIncluded:    rec.IncluirIGV,
		DeliveryAtSite: rec.EntregaEnObra,
	}
	for _, it := range rec.Items {
		q.Items = append(q.Items, quotation.LineItem{
			LocalID:     it.ID,
			Description: it.Descripcion,
			Unit:        it.Unidad,
			Quantity:    it.Cantidad,
			UnitPrice:   it.PrecioUnitario,
			ProductRef:  it.ProductoID,
		})
	}
	return q
}
