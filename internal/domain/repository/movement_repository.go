package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementFilter filtros opcionales del historial. Limit 0 = sin límite.
type MovementFilter struct {
	Type              entity.MovementType
	ProductLocationID int64 // origen o destino
	ProductID         int64
	LocationID        int64
	From              *time.Time
	To                *time.Time
	Limit             int
	Offset            int
}

// MovementRepository define el puerto del log de movimientos (sólo inserción y lectura).
type MovementRepository interface {
	// Create inserta el movimiento y completa ID y CreatedAt.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// List ordena por created_at DESC, id DESC con datos de producto, ubicación y usuario.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	ExistsForProductLocation(ctx context.Context, productLocationID int64) (bool, error)
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
}
