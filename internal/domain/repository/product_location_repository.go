package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductLocationFilter filtros opcionales del listado de contadores.
type ProductLocationFilter struct {
	ProductID  int64
	LocationID int64
	LowStock   bool // sólo current_stock < minimum_stock
}

// ProductLocationRepository define el puerto para los contadores de stock.
// Se usa con pool o dentro de una transacción del motor de movimientos.
type ProductLocationRepository interface {
	// Create inserta un contador con stock 0; ErrDuplicate si el par ya existe.
	Create(ctx context.Context, pl *entity.ProductLocation) error
	GetByID(ctx context.Context, id int64) (*entity.ProductLocation, error)
	// GetForUpdate lee el contador y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.ProductLocation, error)
	// EnsureForPair devuelve el id del contador del par, creándolo si hace falta.
	// ErrNotFound si el producto o la ubicación no existen.
	EnsureForPair(ctx context.Context, productID, locationID int64) (int64, error)
	UpdateStock(ctx context.Context, id, stock int64) error
	UpdateMinimumStock(ctx context.Context, id, minimum int64) error
	List(ctx context.Context, filter ProductLocationFilter) ([]*entity.ProductLocation, error)
	Delete(ctx context.Context, id int64) error
}
