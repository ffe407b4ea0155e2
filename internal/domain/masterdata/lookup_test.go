package masterdata

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	clients  []Client
	products []Product
	loads    int
}

func (f *fakeSource) FetchClients(ctx context.Context) ([]Client, error) {
	f.loads++
	return f.clients, nil
}

func (f *fakeSource) FetchProducts(ctx context.Context) ([]Product, error) {
	return f.products, nil
}

func newTestLookup(t *testing.T) (*Lookup, *fakeSource) {
	t.Helper()
	src := &fakeSource{
		clients: []Client{
			{ID: "c1", RazonSocial: "ACME S.A.C.", NumeroDocumento: "20123456789"},
			{ID: "c2", Nombres: "María", Apellidos: "Quispe", TipoDocumento: "DNI", NumeroDocumento: "41234567"},
		},
		products: []Product{
			{ID: "p1", Descripcion: "Arena gruesa", Unidad: "m³", Precio: decimal.RequireFromString("50")},
			{ID: "p2", Descripcion: "Arena fina", Unidad: "m³", Precio: decimal.RequireFromString("55")},
			{ID: "p3", Descripcion: "Cemento Sol", Unidad: "bolsa", Precio: decimal.RequireFromString("33.50")},
		},
	}
	l := NewLookup(src)
	require.NoError(t, l.Load(context.Background()))
	return l, src
}

func TestLoadIsOncePerSession(t *testing.T) {
	l, src := newTestLookup(t)
	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, 1, src.loads)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	l, _ := newTestLookup(t)
	assert.Len(t, l.SearchProducts("ARENA"), 2)
	assert.Len(t, l.SearchClients("acme"), 1)
}

func TestSearchMatchesDocumentNumber(t *testing.T) {
	l, _ := newTestLookup(t)
	res := l.SearchClients("41234567")
	require.Len(t, res, 1)
	assert.Equal(t, "c2", res[0].ID)
}

func TestSearchRejectsShortQueries(t *testing.T) {
	l, _ := newTestLookup(t)
	assert.Empty(t, l.SearchProducts("a"))
	assert.Empty(t, l.SearchProducts(" "))
	assert.Empty(t, l.SearchProducts(""))
}

func TestSearchCapsAtTenInInputOrder(t *testing.T) {
	src := &fakeSource{}
	for i := 0; i < 15; i++ {
		src.products = append(src.products, Product{
			ID:          fmt.Sprintf("p%d", i),
			Descripcion: fmt.Sprintf("Tubo PVC %d", i),
		})
	}
	l := NewLookup(src)
	require.NoError(t, l.Load(context.Background()))

	res := l.SearchProducts("tubo")
	require.Len(t, res, MaxMatches)
	for i, p := range res {
		assert.Equal(t, fmt.Sprintf("p%d", i), p.ID)
	}
}

func TestByIDResolvesSelections(t *testing.T) {
	l, _ := newTestLookup(t)

	c, ok := l.ClientByID("c1")
	require.True(t, ok)
	assert.Equal(t, "ACME S.A.C.", c.DisplayName())

	_, ok = l.ProductByID("missing")
	assert.False(t, ok)
}

func TestDebouncerRunsOnlyLastCall(t *testing.T) {
	var ran int32
	var last int32
	b := NewDebouncer(30 * time.Millisecond)
	for i := 1; i <= 5; i++ {
		i := i
		b.Do(func() {
			atomic.AddInt32(&ran, 1)
			atomic.StoreInt32(&last, int32(i))
		})
	}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
	assert.Equal(t, int32(5), atomic.LoadInt32(&last))
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var ran int32
	b := NewDebouncer(30 * time.Millisecond)
	b.Do(func() { atomic.AddInt32(&ran, 1) })
	b.Stop()
	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&ran))
}

func TestDisplayNameDerivation(t *testing.T) {
	assert.Equal(t, "ACME S.A.C.", Client{RazonSocial: "ACME S.A.C.", Nombres: "x"}.DisplayName())
	assert.Equal(t, "María Quispe", Client{Nombres: "María", Apellidos: "Quispe"}.DisplayName())
	assert.Equal(t, "RUC - 20123456789", Client{RazonSocial: "ACME", TipoDocumento: "DNI", NumeroDocumento: "20123456789"}.DocumentLabel())
	assert.Equal(t, "DNI - 41234567", Client{Nombres: "María", TipoDocumento: "DNI", NumeroDocumento: "41234567"}.DocumentLabel())
	assert.Empty(t, Client{TipoDocumento: "DNI"}.DocumentLabel())
}
