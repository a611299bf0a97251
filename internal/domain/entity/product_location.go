package entity

import "time"

// ProductLocation es el contador de stock de un producto en una ubicación.
// CurrentStock sólo lo modifica el motor de movimientos y nunca queda negativo;
// MinimumStock es un umbral informativo para el reporte de stock bajo.
type ProductLocation struct {
	ID           int64
	ProductID    int64
	LocationID   int64
	CurrentStock int64
	MinimumStock int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Product  *Product
	Location *Location
}

// IsLowStock indica si el saldo está por debajo del mínimo configurado.
func (pl *ProductLocation) IsLowStock() bool {
	return pl.CurrentStock < pl.MinimumStock
}
