package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los mensajes viajan tal cual al cliente: la consola busca subcadenas como
// "Insufficient stock" o "Source and target", por eso van en inglés.
var (
	ErrNotFound           = errors.New("Resource not found")
	ErrUserNotFound       = errors.New("User not found")
	ErrEmailAlreadyExists = errors.New("Email is already registered")
	ErrInvalidInput       = errors.New("Invalid input")
	ErrInvalidQuantity    = errors.New("Invalid quantity")
	ErrInvalidTransfer    = errors.New("Source and target product locations must be different")
	ErrDuplicate          = errors.New("Resource already exists")
	ErrUnauthorized       = errors.New("Invalid credentials")
	ErrForbidden          = errors.New("Access denied")
	ErrConflict           = errors.New("Resource is referenced by other records")
	ErrInsufficientStock  = errors.New("Insufficient stock")
)

// StockError describe un movimiento rechazado porque dejaría un contador en negativo.
// errors.Is(err, ErrInsufficientStock) es verdadero para cualquier StockError.
type StockError struct {
	ProductLocationID int64
	Available         int64
	Delta             int64
	Adjustment        bool
}

func (e *StockError) Error() string {
	if e.Adjustment {
		return fmt.Sprintf("Adjustment would result in negative stock for product location %d (current %d, change %d)",
			e.ProductLocationID, e.Available, e.Delta)
	}
	return fmt.Sprintf("Insufficient stock in product location %d: available %d, requested %d",
		e.ProductLocationID, e.Available, -e.Delta)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
