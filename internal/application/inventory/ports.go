package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y nada de lo escrito en fn queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		plRepo repository.ProductLocationRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// SnapshotReader ejecuta lecturas sobre una única instantánea de la BD: lo que fn lea de
// plRepo y movRepo corresponde al mismo punto del historial.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(
		plRepo repository.ProductLocationRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// MovementPublisher recibe cada movimiento ya confirmado junto con los saldos resultantes.
type MovementPublisher interface {
	PublishMovement(movement *entity.Movement, balances map[int64]int64)
}

// MetricsRecorder registra movimientos aplicados y rechazados.
type MetricsRecorder interface {
	MovementApplied(movementType entity.MovementType, elapsed time.Duration)
	MovementRejected(movementType entity.MovementType, reason string)
}

type noopPublisher struct{}

func (noopPublisher) PublishMovement(*entity.Movement, map[int64]int64) {}

type noopRecorder struct{}

func (noopRecorder) MovementApplied(entity.MovementType, time.Duration) {}
func (noopRecorder) MovementRejected(entity.MovementType, string)       {}
