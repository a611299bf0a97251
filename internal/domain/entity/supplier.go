package entity

import "time"

// Supplier proveedor opcional de un producto.
type Supplier struct {
	ID          int64
	Name        string
	ContactName string
	Phone       string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
