package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El stock no vive aquí: se lleva por ubicación en ProductLocation.
type Product struct {
	ID          int64
	SKU         string // único, normalizado en mayúsculas
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario usado para valorizar inventario
	CategoryID  int64
	SupplierID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Datos de lectura (JOIN), no se persisten desde aquí.
	Category *Category
	Supplier *Supplier
}
