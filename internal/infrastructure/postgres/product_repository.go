package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.sku, p.name, p.description, p.price, p.category_id, p.supplier_id, p.created_at, p.updated_at,
	       c.id, c.name, c.description, c.created_at, c.updated_at,
	       s.name, s.contact_name, s.phone, s.email, s.created_at, s.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// nullableSupplier recibe las columnas del LEFT JOIN con proveedores.
type nullableSupplier struct {
	Name, ContactName, Phone, Email *string
	CreatedAt, UpdatedAt            *time.Time
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p   entity.Product
		c   entity.Category
		sup nullableSupplier
	)
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
		&sup.Name, &sup.ContactName, &sup.Phone, &sup.Email, &sup.CreatedAt, &sup.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	if p.SupplierID != nil && sup.Name != nil {
		p.Supplier = &entity.Supplier{
			ID:          *p.SupplierID,
			Name:        *sup.Name,
			ContactName: deref(sup.ContactName),
			Phone:       deref(sup.Phone),
			Email:       deref(sup.Email),
		}
		if sup.CreatedAt != nil {
			p.Supplier.CreatedAt = *sup.CreatedAt
		}
		if sup.UpdatedAt != nil {
			p.Supplier.UpdatedAt = *sup.UpdatedAt
		}
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (sku, name, description, price, category_id, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.SKU, product.Name, product.Description, product.Price, product.CategoryID, product.SupplierID,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	return mapWriteErr("insert product", err, false)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU ya normalizado.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $1, name = $2, description = $3, price = $4, category_id = $5, supplier_id = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		product.SKU, product.Name, product.Description, product.Price, product.CategoryID, product.SupplierID, product.ID,
	).Scan(&product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return mapWriteErr("update product", err, false)
}

// List lista productos con filtros opcionales por categoría, proveedor y texto.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.SupplierID > 0 {
		args = append(args, f.SupplierID)
		where = append(where, fmt.Sprintf("p.supplier_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d)", len(args), len(args)))
	}
	query := productSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.name, p.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto. ErrConflict si tiene contadores de stock.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete product", err, true)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
