package supabase

import (
	"context"
	"net/url"

	"wm-ferretero/go_backend/internal/domain/masterdata"
)

// FetchClients lists the clientes table, most recent first.
func (c *Client) FetchClients(ctx context.Context) ([]masterdata.Client, error) {
	values := url.Values{}
	values.Set("select", "*")
	values.Set("order", "created_at.desc")

	var rows []masterdata.Client
	if err := c.getJSON(ctx, "clientes", values, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchProducts lists the productos table, most recent first.
func (c *Client) FetchProducts(ctx context.Context) ([]masterdata.Product, error) {
	values := url.Values{}
	values.Set("select", "*")
	values.Set("order", "created_at.desc")

	var rows []masterdata.Product
	if err := c.getJSON(ctx, "productos", values, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
