package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductLocationRepository = (*ProductLocationRepo)(nil)

// ProductLocationRepo contadores de stock por (producto, ubicación). Usable con pool o tx.
type ProductLocationRepo struct {
	q Querier
}

// NewProductLocationRepository construye el adaptador. Dentro del motor se pasa la tx.
func NewProductLocationRepository(q Querier) *ProductLocationRepo {
	return &ProductLocationRepo{q: q}
}

const productLocationSelect = `
	SELECT pl.id, pl.product_id, pl.location_id, pl.current_stock, pl.minimum_stock, pl.created_at, pl.updated_at,
	       p.sku, p.name, p.description, p.price, p.category_id, p.supplier_id, p.created_at, p.updated_at,
	       l.name, l.address, l.created_at, l.updated_at
	FROM product_locations pl
	JOIN products p ON p.id = pl.product_id
	JOIN locations l ON l.id = pl.location_id`

func scanProductLocation(row pgx.Row) (*entity.ProductLocation, error) {
	var (
		pl entity.ProductLocation
		p  entity.Product
		l  entity.Location
	)
	err := row.Scan(
		&pl.ID, &pl.ProductID, &pl.LocationID, &pl.CurrentStock, &pl.MinimumStock, &pl.CreatedAt, &pl.UpdatedAt,
		&p.SKU, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		&l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ID = pl.ProductID
	l.ID = pl.LocationID
	pl.Product = &p
	pl.Location = &l
	return &pl, nil
}

// Create inserta el contador con stock 0.
func (r *ProductLocationRepo) Create(ctx context.Context, pl *entity.ProductLocation) error {
	query := `
		INSERT INTO product_locations (product_id, location_id, current_stock, minimum_stock)
		VALUES ($1, $2, 0, $3)
		RETURNING id, current_stock, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, pl.ProductID, pl.LocationID, pl.MinimumStock).
		Scan(&pl.ID, &pl.CurrentStock, &pl.CreatedAt, &pl.UpdatedAt)
	return mapWriteErr("insert product location", err, false)
}

// GetByID obtiene el contador con producto y ubicación.
func (r *ProductLocationRepo) GetByID(ctx context.Context, id int64) (*entity.ProductLocation, error) {
	pl, err := scanProductLocation(r.q.QueryRow(ctx, productLocationSelect+` WHERE pl.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product location: %w", err)
	}
	return pl, nil
}

// GetForUpdate bloquea la fila del contador hasta el fin de la transacción.
// Sólo tiene efecto si el Querier es una tx.
func (r *ProductLocationRepo) GetForUpdate(ctx context.Context, id int64) (*entity.ProductLocation, error) {
	query := `
		SELECT id, product_id, location_id, current_stock, minimum_stock, created_at, updated_at
		FROM product_locations
		WHERE id = $1
		FOR UPDATE`
	var pl entity.ProductLocation
	err := r.q.QueryRow(ctx, query, id).Scan(
		&pl.ID, &pl.ProductID, &pl.LocationID, &pl.CurrentStock, &pl.MinimumStock, &pl.CreatedAt, &pl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock product location: %w", err)
	}
	return &pl, nil
}

// EnsureForPair devuelve el contador del par, creándolo con stock 0 si no existe.
func (r *ProductLocationRepo) EnsureForPair(ctx context.Context, productID, locationID int64) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO product_locations (product_id, location_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, location_id) DO NOTHING
		RETURNING id`, productID, locationID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, mapWriteErr("ensure product location", err, false)
	}
	// Ya existía (o lo creó otra tx concurrente que ya confirmó).
	err = r.q.QueryRow(ctx,
		`SELECT id FROM product_locations WHERE product_id = $1 AND location_id = $2`,
		productID, locationID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get product location by pair: %w", err)
	}
	return id, nil
}

// UpdateStock fija el saldo materializado. Sólo lo llama el motor de movimientos.
func (r *ProductLocationRepo) UpdateStock(ctx context.Context, id, stock int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE product_locations SET current_stock = $1, updated_at = now() WHERE id = $2`, stock, id)
	if err != nil {
		return mapWriteErr("update stock", err, false)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateMinimumStock cambia el umbral de stock bajo.
func (r *ProductLocationRepo) UpdateMinimumStock(ctx context.Context, id, minimum int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE product_locations SET minimum_stock = $1, updated_at = now() WHERE id = $2`, minimum, id)
	if err != nil {
		return mapWriteErr("update minimum stock", err, false)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista contadores con filtros opcionales.
func (r *ProductLocationRepo) List(ctx context.Context, f repository.ProductLocationFilter) ([]*entity.ProductLocation, error) {
	var (
		where []string
		args  []any
	)
	if f.ProductID > 0 {
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("pl.product_id = $%d", len(args)))
	}
	if f.LocationID > 0 {
		args = append(args, f.LocationID)
		where = append(where, fmt.Sprintf("pl.location_id = $%d", len(args)))
	}
	if f.LowStock {
		where = append(where, "pl.current_stock < pl.minimum_stock")
	}
	query := productLocationSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.name, l.name, pl.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductLocation
	for rows.Next() {
		pl, err := scanProductLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product location: %w", err)
		}
		list = append(list, pl)
	}
	return list, rows.Err()
}

// Delete elimina el contador. Los movimientos que lo referencian lo impiden (ErrConflict).
func (r *ProductLocationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_locations WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete product location", err, true)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
