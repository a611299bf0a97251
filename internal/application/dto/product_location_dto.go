package dto

import "time"

// CreateProductLocationRequest entrada para abrir un contador de stock (inicia en 0).
type CreateProductLocationRequest struct {
	ProductID    int64 `json:"productId" validate:"required,gt=0"`
	LocationID   int64 `json:"locationId" validate:"required,gt=0"`
	MinimumStock int64 `json:"minimumStock" validate:"min=0"`
}

// UpdateProductLocationRequest sólo el mínimo es editable; el stock cambia con movimientos.
type UpdateProductLocationRequest struct {
	MinimumStock *int64 `json:"minimumStock" validate:"required,min=0"`
}

// ProductLocationFilter query del listado de contadores.
type ProductLocationFilter struct {
	ProductID  int64 `query:"productId"`
	LocationID int64 `query:"locationId"`
	LowStock   bool  `query:"lowStock"`
}

// ProductLocationResponse salida de un contador con producto y ubicación.
type ProductLocationResponse struct {
	ID           int64             `json:"id"`
	ProductID    int64             `json:"productId"`
	LocationID   int64             `json:"locationId"`
	CurrentStock int64             `json:"currentStock"`
	MinimumStock int64             `json:"minimumStock"`
	IsLowStock   bool              `json:"isLowStock"`
	Product      *ProductResponse  `json:"product,omitempty"`
	Location     *LocationResponse `json:"location,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
