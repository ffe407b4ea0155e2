package masterdata

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a row of the clientes master table. Either RazonSocial (businesses)
// or Nombres/Apellidos (individuals) carries the identity.
type Client struct {
	ID              string    `json:"id"`
	Nombres         string    `json:"nombres"`
	Apellidos       string    `json:"apellidos"`
	RazonSocial     string    `json:"razon_social"`
	TipoDocumento   string    `json:"tipo_documento"`
	NumeroDocumento string    `json:"numero_documento"`
	CreatedAt       time.Time `json:"created_at"`
}

// DisplayName prefers the business name over the personal name.
func (c Client) DisplayName() string {
	if s := strings.TrimSpace(c.RazonSocial); s != "" {
		return s
	}
	return strings.TrimSpace(strings.TrimSpace(c.Nombres) + " " + strings.TrimSpace(c.Apellidos))
}

// DocumentLabel renders "RUC - 10215770635" style labels. Businesses are
// assumed to carry a RUC regardless of the stored document type.
func (c Client) DocumentLabel() string {
	if c.NumeroDocumento == "" {
		return ""
	}
	tipo := c.TipoDocumento
	if strings.TrimSpace(c.RazonSocial) != "" {
		tipo = "RUC"
	}
	return tipo + " - " + c.NumeroDocumento
}

// Product is a row of the productos master table.
type Product struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Unidad      string          `json:"unidad"`
	Precio      decimal.Decimal `json:"precio"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DisplayName for a product is its description text.
func (p Product) DisplayName() string { return strings.TrimSpace(p.Descripcion) }
