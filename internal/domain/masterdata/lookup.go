package masterdata

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MinQueryLen is the shortest query the lookup will answer; anything shorter
// returns no matches.
const MinQueryLen = 2

// MaxMatches caps how many matches one search returns, in input order.
const MaxMatches = 10

// Source is the slice of the external store the lookup needs.
type Source interface {
	FetchClients(ctx context.Context) ([]Client, error)
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Lookup holds the per-session client and product collections, fetched once
// from the external store and searched in memory afterwards.
type Lookup struct {
	src Source

	mu       sync.RWMutex
	clients  []Client
	products []Product
	loaded   bool
}

func NewLookup(src Source) *Lookup {
	return &Lookup{src: src}
}

// Load fetches both collections. It is a no-op once a load has succeeded.
func (l *Lookup) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return nil
	}
	clients, err := l.src.FetchClients(ctx)
	if err != nil {
		return fmt.Errorf("fetch clientes: %w", err)
	}
	products, err := l.src.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("fetch productos: %w", err)
	}
	l.clients = clients
	l.products = products
	l.loaded = true
	return nil
}

// SearchClients matches the query, case-insensitively, against the client's
// full name, business name and document number.
func (l *Lookup) SearchClients(query string) []Client {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Client
	for _, c := range l.clients {
		hay := strings.ToLower(c.DisplayName() + " " + c.RazonSocial + " " + c.NumeroDocumento)
		if strings.Contains(hay, q) {
			out = append(out, c)
			if len(out) == MaxMatches {
				break
			}
		}
	}
	return out
}

// SearchProducts matches the query against the product description.
func (l *Lookup) SearchProducts(query string) []Product {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Product
	for _, p := range l.products {
		if strings.Contains(strings.ToLower(p.Descripcion), q) {
			out = append(out, p)
			if len(out) == MaxMatches {
				break
			}
		}
	}
	return out
}

// ClientByID resolves a selected match back to its record.
func (l *Lookup) ClientByID(id string) (Client, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, c := range l.clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// ProductByID resolves a selected match back to its record.
func (l *Lookup) ProductByID(id string) (Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func normalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	if len([]rune(q)) < MinQueryLen {
		return ""
	}
	return q
}
