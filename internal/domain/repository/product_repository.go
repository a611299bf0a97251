package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos (cero = sin filtro).
type ProductFilter struct {
	CategoryID int64
	SupplierID int64
	Search     string // coincide con nombre o SKU, sin distinguir mayúsculas
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas traen Category y Supplier embebidos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
