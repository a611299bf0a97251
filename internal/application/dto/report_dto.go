package dto

import "github.com/shopspring/decimal"

// CategoryValueDTO valor del inventario de una categoría.
type CategoryValueDTO struct {
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Value        decimal.Decimal `json:"value"`
}

// LocationValueDTO valor del inventario de una ubicación.
type LocationValueDTO struct {
	LocationID   int64           `json:"locationId"`
	LocationName string          `json:"locationName"`
	Value        decimal.Decimal `json:"value"`
}

// InventoryValueResponse GET /api/reports/inventory-value.
type InventoryValueResponse struct {
	Total      decimal.Decimal    `json:"total"`
	ByCategory []CategoryValueDTO `json:"byCategory"`
	ByLocation []LocationValueDTO `json:"byLocation"`
}
