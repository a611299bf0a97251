package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ValueByCategory valor del inventario agrupado por categoría.
type ValueByCategory struct {
	CategoryID   int64
	CategoryName string
	Value        decimal.Decimal
}

// ValueByLocation valor del inventario agrupado por ubicación.
type ValueByLocation struct {
	LocationID   int64
	LocationName string
	Value        decimal.Decimal
}

// InventoryValueBreakdown ambos desgloses leídos de la misma instantánea.
type InventoryValueBreakdown struct {
	ByCategory []ValueByCategory
	ByLocation []ValueByLocation
}

// ReportRepository consultas de sólo lectura para reportes.
// Valor = Σ current_stock × price.
type ReportRepository interface {
	InventoryValue(ctx context.Context) (*InventoryValueBreakdown, error)
}
