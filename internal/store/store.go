package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"wm-ferretero/go_backend/internal/domain/masterdata"
	"wm-ferretero/go_backend/internal/domain/quotation"
)

// ErrNotFound is returned when a persisted quotation id does not exist.
var ErrNotFound = errors.New("cotización no encontrada")

// ErrNumbering wraps any failure of the atomic number allocator. Submission
// aborts on it; there is deliberately no client-side fallback number.
var ErrNumbering = errors.New("no se pudo obtener el número de cotización")

// Summary is one history row.
type Summary struct {
	ID         string          `json:"id"`
	Number     string          `json:"numero_cotizacion"`
	ClientName string          `json:"cliente"`
	Date       string          `json:"fecha"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Store is the external master-data and quotation persistence service. The
// concrete shape behind it (embedded record via PostgREST, or normalized rows
// via postgres) is a deployment-time choice.
type Store interface {
	masterdata.Source

	// NextNumber allocates a globally unique sequential quotation number.
	// The atomicity guarantee lives in the external store.
	NextNumber(ctx context.Context) (string, error)

	// SaveQuotation persists a frozen aggregate and returns its storage id.
	SaveQuotation(ctx context.Context, q quotation.Quotation) (string, error)

	// ListQuotations returns history rows, most recent first.
	ListQuotations(ctx context.Context) ([]Summary, error)

	// GetQuotation reads one persisted quotation back into canonical form,
	// substituting placeholders for deleted master records.
	GetQuotation(ctx context.Context, id string) (quotation.Quotation, error)
}
