package supabase

import (
	"context"
	"fmt"
	"net/url"

	"wm-ferretero/go_backend/internal/domain/quotation"
	"wm-ferretero/go_backend/internal/store"
	"wm-ferretero/go_backend/internal/store/codec"
)

// NextNumber calls the atomic counter function in the store. Any failure is
// surfaced as ErrNumbering: the old timestamp-derived fallback produced
// collision-prone numbers and was removed.
func (c *Client) NextNumber(ctx context.Context) (string, error) {
	var number string
	if err := c.callRPC(ctx, "obtener_siguiente_numero_cotizacion", struct{}{}, &number); err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrNumbering, err)
	}
	if number == "" {
		return "", fmt.Errorf("%w: respuesta vacía", store.ErrNumbering)
	}
	return number, nil
}

// SaveQuotation inserts one embedded row into cotizaciones.
func (c *Client) SaveQuotation(ctx context.Context, q quotation.Quotation) (string, error) {
	rec := codec.EncodeEmbedded(q)

	var inserted []codec.EmbeddedRecord
	if err := c.insertJSON(ctx, "cotizaciones", rec, &inserted); err != nil {
		return "", fmt.Errorf("insert cotización: %w", err)
	}
	if len(inserted) == 0 {
		return "", fmt.Errorf("insert cotización: sin representación")
	}
	return inserted[0].ID, nil
}

// ListQuotations reads history rows, most recent first.
func (c *Client) ListQuotations(ctx context.Context) ([]store.Summary, error) {
	values := url.Values{}
	values.Set("select", "id,numero_cotizacion,cliente,fecha,total,created_at")
	values.Set("order", "created_at.desc")

	var rows []codec.EmbeddedRecord
	if err := c.getJSON(ctx, "cotizaciones", values, &rows); err != nil {
		return nil, err
	}
	out := make([]store.Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.Summary{
			ID:         r.ID,
			Number:     r.NumeroCotizacion,
			ClientName: r.Cliente,
			Date:       r.Fecha,
			Total:      r.Total,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}

// GetQuotation reads one embedded row back into canonical form.
func (c *Client) GetQuotation(ctx context.Context, id string) (quotation.Quotation, error) {
	values := url.Values{}
	values.Set("select", "*")
	values.Set("id", "eq."+id)
	values.Set("limit", "1")

	var rows []codec.EmbeddedRecord
	if err := c.getJSON(ctx, "cotizaciones", values, &rows); err != nil {
		return quotation.Quotation{}, err
	}
	if len(rows) == 0 {
		return quotation.Quotation{}, store.ErrNotFound
	}
	return codec.DecodeEmbedded(rows[0]), nil
}
