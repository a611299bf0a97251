package entity

import "time"

// Location representa un sitio físico (bodega, tienda, estante) donde se guarda stock.
type Location struct {
	ID        int64
	Name      string // único
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
