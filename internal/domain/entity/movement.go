package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeEntry      MovementType = "ENTRY"      // entrada
	MovementTypeExit       MovementType = "EXIT"       // salida
	MovementTypeAdjustment MovementType = "ADJUSTMENT" // ajuste con signo
	MovementTypeTransfer   MovementType = "TRANSFER"   // traslado entre contadores
)

// Valid indica si t es uno de los cuatro tipos conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjustment, MovementTypeTransfer:
		return true
	}
	return false
}

// Movement es el registro inmutable de un cambio de stock. No se actualiza ni se borra:
// una corrección es otro movimiento.
type Movement struct {
	ID                      int64
	Type                    MovementType
	Quantity                int64 // con signo sólo en ADJUSTMENT
	ProductLocationID       int64 // origen en TRANSFER
	TargetProductLocationID *int64
	UserID                  int64
	Notes                   string
	CreatedAt               time.Time

	// Datos de lectura para listados.
	ProductLocation       *ProductLocation
	TargetProductLocation *ProductLocation
	User                  *User
}
