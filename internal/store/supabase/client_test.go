package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wm-ferretero/go_backend/internal/domain/quotation"
	"wm-ferretero/go_backend/internal/store"
	"wm-ferretero/go_backend/internal/store/codec"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNextNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/obtener_siguiente_numero_cotizacion", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode("COT-000042")
	}))
	defer srv.Close()

	number, err := New(srv.URL, "secret").NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "COT-000042", number)
}

func TestNextNumberFailureHasNoFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	number, err := New(srv.URL, "secret").NextNumber(context.Background())
	require.ErrorIs(t, err, store.ErrNumbering)
	assert.Empty(t, number, "a failed allocation must never invent a number")
}

func TestFetchProductsOrderedMostRecentFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/productos", r.URL.Path)
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		w.Write([]byte(`[{"id":"p1","descripcion":"Arena gruesa","unidad":"m³","precio":50}]`))
	}))
	defer srv.Close()

	products, err := New(srv.URL, "secret").FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Arena gruesa", products[0].Descripcion)
	assert.True(t, products[0].Precio.Equal(decimal.RequireFromString("50")))
}

func TestFetchClientsOrderedMostRecentFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/clientes", r.URL.Path)
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		w.Write([]byte(`[{"id":"c1","razon_social":"ACME S.A.C."}]`))
	}))
	defer srv.Close()

	clients, err := New(srv.URL, "secret").FetchClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "ACME S.A.C.", clients[0].DisplayName())
}

func TestSaveQuotationInsertsEmbeddedRow(t *testing.T) {
	var got codec.EmbeddedRecord
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/cotizaciones", r.URL.Path)
		assert.Contains(t, r.Header.Get("Prefer"), "return=representation")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &payload))
		require.NoError(t, json.Unmarshal(body, &got))
		got.ID = "row-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]codec.EmbeddedRecord{got})
	}))
	defer srv.Close()

	q := quotation.Quotation{
		Number:     "COT-000042",
		ClientName: "ACME S.A.C.",
		Date:       "15/08/2026",
		Items: []quotation.LineItem{
			{LocalID: 1, Description: "Arena gruesa", Unit: "m³", Quantity: dec("2"), UnitPrice: dec("50")},
		},
		TaxIncluded: true,
	}
	q.Recalculate()

	id, err := New(srv.URL, "secret").SaveQuotation(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "row-1", id)
	assert.Equal(t, "COT-000042", got.NumeroCotizacion)
	assert.Equal(t, "ACME S.A.C.", got.Cliente)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Arena gruesa", got.Items[0].Descripcion)
	// created_at must stay out of the insert so the DB default stamps it
	assert.NotContains(t, payload, "created_at")
	assert.NotContains(t, payload, "id")
}

func TestGetQuotationNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "secret").GetQuotation(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetQuotationDecodesEmbeddedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.row-1", r.URL.Query().Get("id"))
		w.Write([]byte(`[{
			"id": "row-1",
			"numero_cotizacion": "COT-000007",
			"cliente": "ACME S.A.C.",
			"fecha": "15/08/2026",
			"items": [{"id":1,"descripcion":"Arena gruesa","unidad":"m³","cantidad":2,"precioUnitario":50}],
			"subtotal": 100, "igv": 18, "total": 118,
			"incluir_igv": true, "entrega_en_obra": false
		}]`))
	}))
	defer srv.Close()

	q, err := New(srv.URL, "secret").GetQuotation(context.Background(), "row-1")
	require.NoError(t, err)
	assert.Equal(t, "COT-000007", q.Number)
	require.Len(t, q.Items, 1)
	assert.True(t, q.Total.Equal(decimal.RequireFromString("118")))
	assert.True(t, q.TaxIncluded)
}
