// Package postgres is the normalized-shape deployment of the store: a parent
// cotizaciones row with a clientes foreign key, plus ordered cotizacion_items
// child rows referencing productos.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wm-ferretero/go_backend/internal/domain/masterdata"
	"wm-ferretero/go_backend/internal/domain/quotation"
	infra "wm-ferretero/go_backend/internal/infra/db/postgres"
	"wm-ferretero/go_backend/internal/store"
	"wm-ferretero/go_backend/internal/store/codec"
)

type Store struct {
	db *infra.DB
}

func New(db *infra.DB) *Store {
	return &Store{db: db}
}

// FetchClients lists the clientes table, most recent first.
func (s *Store) FetchClients(ctx context.Context) ([]masterdata.Client, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, nombres, apellidos, razon_social, tipo_documento, numero_documento, created_at
		FROM clientes
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []masterdata.Client
	for rows.Next() {
		var c masterdata.Client
		if err := rows.Scan(&c.ID, &c.Nombres, &c.Apellidos, &c.RazonSocial, &c.TipoDocumento, &c.NumeroDocumento, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FetchProducts lists the productos table, most recent first.
func (s *Store) FetchProducts(ctx context.Context) ([]masterdata.Product, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, descripcion, unidad, precio, created_at
		FROM productos
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []masterdata.Product
	for rows.Next() {
		var p masterdata.Product
		if err := rows.Scan(&p.ID, &p.Descripcion, &p.Unidad, &p.Precio, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// NextNumber allocates from the database sequence. The sequence is the atomic
// counter: concurrent sessions can never draw the same number.
func (s *Store) NextNumber(ctx context.Context) (string, error) {
	var n int64
	if err := s.db.Pool.QueryRow(ctx, `SELECT nextval('cotizacion_numero_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrNumbering, err)
	}
	return fmt.Sprintf("COT-%06d", n), nil
}

// SaveQuotation writes the parent row and its item rows in one transaction.
// The failing stage is named so a partial failure is diagnosable.
func (s *Store) SaveQuotation(ctx context.Context, q quotation.Quotation) (string, error) {
	rec, items := codec.EncodeNormalized(q)

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO cotizaciones (numero_cotizacion, cliente_id, cliente, fecha, subtotal, igv, total, incluir_igv, entrega_en_obra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		rec.NumeroCotizacion, rec.ClienteID, rec.Cliente, rec.Fecha, rec.Subtotal, rec.IGV, rec.Total, rec.IncluirIGV, rec.EntregaEnObra,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert cotización: %w", err)
	}

	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO cotizacion_items (cotizacion_id, posicion, descripcion, unidad, cantidad, precio_unitario, producto_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, it.Posicion, it.Descripcion, it.Unidad, it.Cantidad, it.PrecioUnitario, it.ProductoID)
		if err != nil {
			return "", fmt.Errorf("insert items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListQuotations reads history rows, most recent first, joining the client
// name when the master record still exists.
func (s *Store) ListQuotations(ctx context.Context) ([]store.Summary, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT c.id, c.numero_cotizacion,
		       COALESCE(NULLIF(TRIM(cl.razon_social), ''), NULLIF(TRIM(CONCAT(cl.nombres, ' ', cl.apellidos)), ''),
		                NULLIF(TRIM(c.cliente), ''),
		                CASE WHEN c.cliente_id IS NULL THEN '' ELSE $1 END),
		       c.fecha, c.total, c.created_at
		FROM cotizaciones c
		LEFT JOIN clientes cl ON cl.id = c.cliente_id
		ORDER BY c.created_at DESC`, codec.PlaceholderClient)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Summary
	for rows.Next() {
		var sum store.Summary
		if err := rows.Scan(&sum.ID, &sum.Number, &sum.ClientName, &sum.Date, &sum.Total, &sum.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetQuotation reads the parent, items and joined master rows, then decodes
// them into canonical form with placeholders for deleted master data.
func (s *Store) GetQuotation(ctx context.Context, id string) (quotation.Quotation, error) {
	var rec codec.NormalizedRecord
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, created_at, numero_cotizacion, cliente_id, cliente, fecha, subtotal, igv, total, incluir_igv, entrega_en_obra
		FROM cotizaciones WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.NumeroCotizacion, &rec.ClienteID, &rec.Cliente, &rec.Fecha,
		&rec.Subtotal, &rec.IGV, &rec.Total, &rec.IncluirIGV, &rec.EntregaEnObra)
	if errors.Is(err, pgx.ErrNoRows) {
		return quotation.Quotation{}, store.ErrNotFound
	}
	if err != nil {
		return quotation.Quotation{}, err
	}

	var client *masterdata.Client
	if rec.ClienteID != nil {
		var c masterdata.Client
		err := s.db.Pool.QueryRow(ctx, `
			SELECT id, nombres, apellidos, razon_social, tipo_documento, numero_documento, created_at
			FROM clientes WHERE id = $1`, *rec.ClienteID,
		).Scan(&c.ID, &c.Nombres, &c.Apellidos, &c.RazonSocial, &c.TipoDocumento, &c.NumeroDocumento, &c.CreatedAt)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// deleted after issue; decode substitutes the placeholder
		case err != nil:
			return quotation.Quotation{}, err
		default:
			client = &c
		}
	}

	itemRows, err := s.db.Pool.Query(ctx, `
		SELECT posicion, descripcion, unidad, cantidad, precio_unitario, producto_id
		FROM cotizacion_items WHERE cotizacion_id = $1
		ORDER BY posicion`, id)
	if err != nil {
		return quotation.Quotation{}, err
	}
	defer itemRows.Close()

	var items []codec.ItemRow
	for itemRows.Next() {
		var it codec.ItemRow
		if err := itemRows.Scan(&it.Posicion, &it.Descripcion, &it.Unidad, &it.Cantidad, &it.PrecioUnitario, &it.ProductoID); err != nil {
			return quotation.Quotation{}, err
		}
		items = append(items, it)
	}
	if err := itemRows.Err(); err != nil {
		return quotation.Quotation{}, err
	}

	products := make(map[string]masterdata.Product)
	for _, it := range items {
		if it.ProductoID == nil {
			continue
		}
		if _, ok := products[*it.ProductoID]; ok {
			continue
		}
		var p masterdata.Product
		err := s.db.Pool.QueryRow(ctx, `
			SELECT id, descripcion, unidad, precio, created_at
			FROM productos WHERE id = $1`, *it.ProductoID,
		).Scan(&p.ID, &p.Descripcion, &p.Unidad, &p.Precio, &p.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return quotation.Quotation{}, err
		}
		products[p.ID] = p
	}

	return codec.DecodeNormalized(rec, items, client, products), nil
}
