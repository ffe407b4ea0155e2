package quotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wm-ferretero/go_backend/internal/domain/masterdata"
)

// Builder owns one in-progress quotation: the mutable item list, the client
// selection and the toggles. Totals are recomputed synchronously after every
// mutation so they can never drift from the items.
type Builder struct {
	q           Quotation
	nextLocalID int
}

// NewBuilder starts a draft with today's date and one blank line item.
func NewBuilder() *Builder {
	b := &Builder{
		q:           Quotation{Date: time.Now().Format(DateLayout)},
		nextLocalID: 1,
	}
	b.AddItem()
	return b
}

// AddItem appends a blank row and returns it.
func (b *Builder) AddItem() LineItem {
	it := LineItem{LocalID: b.nextLocalID}
	b.nextLocalID++
	b.q.Items = append(b.q.Items, it)
	b.q.Recalculate()
	return it
}

// RemoveItem deletes the row with the given local id. Removing the last
// remaining row is allowed; the list stays usable and AddItem restores it.
func (b *Builder) RemoveItem(localID int) bool {
	for i, it := range b.q.Items {
		if it.LocalID == localID {
			b.q.Items = append(b.q.Items[:i], b.q.Items[i+1:]...)
			b.q.Recalculate()
			return true
		}
	}
	return false
}

// ItemPatch carries the editable fields of one row. Nil means "leave as is".
type ItemPatch struct {
	Description *string
	Unit        *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// UpdateItem applies a patch to the row with the given local id.
func (b *Builder) UpdateItem(localID int, p ItemPatch) error {
	for i := range b.q.Items {
		if b.q.Items[i].LocalID != localID {
			continue
		}
		if p.Description != nil {
			// A free-text rewrite detaches the row from the product it
			// came from; the row now owns its text.
			if *p.Description != b.q.Items[i].Description {
				b.q.Items[i].ProductRef = nil
			}
			b.q.Items[i].Description = *p.Description
		}
		if p.Unit != nil {
			b.q.Items[i].Unit = *p.Unit
		}
		if p.Quantity != nil {
			q := *p.Quantity
			b.q.Items[i].Quantity = &q
		}
		if p.UnitPrice != nil {
			pr := *p.UnitPrice
			b.q.Items[i].UnitPrice = &pr
		}
		b.q.Recalculate()
		return nil
	}
	return fmt.Errorf("item %d: not in draft", localID)
}

// SetClient records a free-text client with no master-data reference.
func (b *Builder) SetClient(name string) {
	b.q.ClientName = name
	b.q.ClientRef = nil
}

// ApplyClient copies a master-data selection into the aggregate.
func (b *Builder) ApplyClient(c masterdata.Client) {
	id := c.ID
	b.q.ClientName = c.DisplayName()
	b.q.ClientRef = &id
}

// ApplyProduct copies a product selection into one row: description, unit,
// current list price and the master reference.
func (b *Builder) ApplyProduct(localID int, p masterdata.Product) error {
	for i := range b.q.Items {
		if b.q.Items[i].LocalID != localID {
			continue
		}
		id := p.ID
		precio := p.Precio
		b.q.Items[i].Description = p.Descripcion
		b.q.Items[i].Unit = p.Unidad
		b.q.Items[i].UnitPrice = &precio
		b.q.Items[i].ProductRef = &id
		b.q.Recalculate()
		return nil
	}
	return fmt.Errorf("item %d: not in draft", localID)
}

// SetToggles sets the two business flags and refreshes the totals.
func (b *Builder) SetToggles(taxIncluded, deliveryAtSite bool) {
	b.q.TaxIncluded = taxIncluded
	b.q.DeliveryAtSite = deliveryAtSite
	b.q.Recalculate()
}

// Quotation returns a copy of the aggregate with fresh totals.
func (b *Builder) Quotation() Quotation {
	b.q.Recalculate()
	out := b.q
	out.Items = make([]LineItem, len(b.q.Items))
	copy(out.Items, b.q.Items)
	return out
}

// Validate is the submission gate. It reports every problem at once and is
// side-effect free: no numbering or persistence happens until it passes.
func (b *Builder) Validate() error {
	var problems []string
	if strings.TrimSpace(b.q.ClientName) == "" && b.q.ClientRef == nil {
		problems = append(problems, "debe identificar un cliente")
	}
	for _, it := range b.q.Items {
		if strings.TrimSpace(it.Description) == "" {
			problems = append(problems, fmt.Sprintf("item %d: la descripción es requerida", it.LocalID))
		}
		if it.Quantity == nil || !it.Quantity.IsPositive() {
			problems = append(problems, fmt.Sprintf("item %d: la cantidad debe ser mayor a 0", it.LocalID))
		}
		if it.UnitPrice == nil {
			problems = append(problems, fmt.Sprintf("item %d: el precio unitario es requerido", it.LocalID))
		}
	}
	if len(b.q.Items) == 0 {
		problems = append(problems, "la cotización no tiene items")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidationError lists what blocks a submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "cotización inválida: " + strings.Join(e.Problems, "; ")
}
