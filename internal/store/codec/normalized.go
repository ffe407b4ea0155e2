package codec

import (
	"time"

	"github.com/shopspring/decimal"

	"wm-ferretero/go_backend/internal/domain/masterdata"
	"wm-ferretero/go_backend/internal/domain/quotation"
)

// NormalizedRecord is the cotizaciones parent row of the normalized shape:
// identifying fields plus totals, and a foreign key to clientes. Cliente
// holds free text only when no master record was selected.
type NormalizedRecord struct {
	ID               string
	CreatedAt        time.Time
	NumeroCotizacion string
	ClienteID        *string
	Cliente          *string
	Fecha            string
	Subtotal         decimal.Decimal
	IGV              decimal.Decimal
	Total            decimal.Decimal
	IncluirIGV       bool
	EntregaEnObra    bool
}

// ItemRow is one cotizacion_items child row. Rows referencing a product
// re-join descripcion and unidad from productos at read time; refless
// free-text rows carry their own.
type ItemRow struct {
	Posicion       int
	Descripcion    *string
	Unidad         *string
	Cantidad       *decimal.Decimal
	PrecioUnitario *decimal.Decimal
	ProductoID     *string
}

// EncodeNormalized splits a canonical quotation into parent and child rows.
func EncodeNormalized(q quotation.Quotation) (NormalizedRecord, []ItemRow) {
	rec := NormalizedRecord{
		NumeroCotizacion: q.Number,
		ClienteID:        q.ClientRef,
		Fecha:            q.Date,
		Subtotal:         q.Subtotal,
		IGV:              q.Tax,
		Total:            q.Total,
		IncluirIGV:       q.TaxIncluded,
		EntregaEnObra:    q.DeliveryAtSite,
	}
	if q.ClientRef == nil && q.ClientName != "" {
		name := q.ClientName
		rec.Cliente = &name
	}
	rows := make([]ItemRow, 0, len(q.Items))
	for i, it := range q.Items {
		row := ItemRow{
			Posicion:       i + 1,
			Cantidad:       it.Quantity,
			PrecioUnitario: it.UnitPrice,
			ProductoID:     it.ProductRef,
		}
		if it.ProductRef == nil {
			desc, unit := it.Description, it.Unit
			row.Descripcion = &desc
			row.Unidad = &unit
		}
		rows = append(rows, row)
	}
	return rec, rows
}

// DecodeNormalized rebuilds the canonical quotation from the parent row, its
// ordered child rows and the joined master records. A broken reference (the
// row names a client or product id that no longer resolves) gets a
// placeholder so old quotations always reprint; refless free-text entries
// keep their own stored text and never see a placeholder.
func DecodeNormalized(rec NormalizedRecord, rows []ItemRow, client *masterdata.Client, products map[string]masterdata.Product) quotation.Quotation {
	q := quotation.Quotation{
		Number:         rec.NumeroCotizacion,
		ClientRef:      rec.ClienteID,
		Date:           rec.Fecha,
		Items:          make([]quotation.LineItem, 0, len(rows)),
		Subtotal:       rec.Subtotal,
		Tax:            rec.IGV,
		Total:          rec.Total,
		TaxIncluded:    rec.IncluirIGV,
		DeliveryAtSite: rec.EntregaEnObra,
	}
	switch {
	case client != nil:
		q.ClientName = client.DisplayName()
	case rec.ClienteID != nil:
		q.ClientName = PlaceholderClient
	case rec.Cliente != nil:
		q.ClientName = *rec.Cliente
	}
	for _, row := range rows {
		it := quotation.LineItem{
			LocalID:    row.Posicion,
			Quantity:   row.Cantidad,
			UnitPrice:  row.PrecioUnitario,
			ProductRef: row.ProductoID,
		}
		switch {
		case row.ProductoID != nil:
			if p, ok := products[*row.ProductoID]; ok {
				it.Description = p.Descripcion
				it.Unit = p.Unidad
			} else {
				it.Description = PlaceholderProduct
			}
		default:
			if row.Descripcion != nil {
				it.Description = *row.Descripcion
			}
			if row.Unidad != nil {
				it.Unit = *row.Unidad
			}
		}
		q.Items = append(q.Items, it)
	}
	return q
}
