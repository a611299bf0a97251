package entity

import "time"

// Category agrupa productos; el reporte de valor de inventario se desglosa por categoría.
type Category struct {
	ID          int64
	Name        string // único
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
