package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o actualizar un producto.
type ProductRequest struct {
	SKU         string          `json:"sku" validate:"required,notblank,max=100"`
	Name        string          `json:"name" validate:"required,notblank,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId" validate:"required,gt=0"`
	SupplierID  *int64          `json:"supplierId" validate:"omitempty,gt=0"`
}

// ProductFilter query del listado de productos.
type ProductFilter struct {
	CategoryID int64  `query:"categoryId"`
	SupplierID int64  `query:"supplierId"`
	Search     string `query:"search"`
}

// ProductResponse salida de un producto con su categoría y proveedor.
type ProductResponse struct {
	ID          int64             `json:"id"`
	SKU         string            `json:"sku"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	CategoryID  int64             `json:"categoryId"`
	SupplierID  *int64            `json:"supplierId,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Supplier    *SupplierResponse `json:"supplier,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
