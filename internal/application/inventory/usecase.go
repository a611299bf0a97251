package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos de stock (ENTRY, EXIT, ADJUSTMENT, TRANSFER)
// de forma transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ApplyMovementUseCase struct {
	txRunner  TxRunner
	publisher MovementPublisher
	metrics   MetricsRecorder
	log       zerolog.Logger
}

// NewApplyMovementUseCase construye el caso de uso. publisher y metrics pueden ser nil.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	publisher MovementPublisher,
	metrics MetricsRecorder,
	log zerolog.Logger,
) *ApplyMovementUseCase {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &ApplyMovementUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// Apply valida cmd, bloquea los contadores involucrados en orden ascendente de id,
// calcula los saldos nuevos y guarda contadores y movimiento en la misma transacción.
// Ante cualquier rechazo no se escribe nada.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, userID int64, cmd inventory.Command) (*entity.Movement, error) {
	start := time.Now()
	if err := inventory.Validate(cmd); err != nil {
		uc.reject(cmd, userID, err)
		return nil, err
	}

	var (
		created  entity.Movement
		balances map[int64]int64
	)
	err := uc.txRunner.Run(ctx, func(
		plRepo repository.ProductLocationRepository,
		movRepo repository.MovementRepository,
	) error {
		resolved, err := resolveEntry(ctx, plRepo, cmd)
		if err != nil {
			return err
		}

		ids := inventory.LockOrder(resolved)
		current := make(map[int64]int64, len(ids))
		for _, id := range ids {
			pl, err := plRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if pl == nil {
				return fmt.Errorf("%w: product location %d", domain.ErrNotFound, id)
			}
			current[id] = pl.CurrentStock
		}

		next, err := inventory.Plan(resolved, current)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := plRepo.UpdateStock(ctx, id, next[id]); err != nil {
				return err
			}
		}

		m := inventory.Record(resolved, userID)
		if err := movRepo.Create(ctx, &m); err != nil {
			return err
		}
		created, balances = m, next
		return nil
	})
	if err != nil {
		uc.reject(cmd, userID, err)
		return nil, err
	}

	uc.metrics.MovementApplied(created.Type, time.Since(start))
	uc.log.Info().
		Int64("movement_id", created.ID).
		Str("type", string(created.Type)).
		Int64("quantity", created.Quantity).
		Int64("product_location_id", created.ProductLocationID).
		Int64("user_id", userID).
		Msg("movimiento aplicado")
	uc.publisher.PublishMovement(&created, balances)
	return &created, nil
}

// resolveEntry convierte una entrada por producto/ubicación en una entrada por contador,
// creando el contador si todavía no existe.
func resolveEntry(ctx context.Context, plRepo repository.ProductLocationRepository, cmd inventory.Command) (inventory.Command, error) {
	e, ok := cmd.(inventory.Entry)
	if !ok || e.ProductLocationID != 0 {
		return cmd, nil
	}
	if e.ProductID == 0 || e.LocationID == 0 {
		return nil, fmt.Errorf("%w: productLocationId or productId and locationId are required", domain.ErrInvalidInput)
	}
	id, err := plRepo.EnsureForPair(ctx, e.ProductID, e.LocationID)
	if err != nil {
		return nil, err
	}
	e.ProductLocationID = id
	return e, nil
}

func (uc *ApplyMovementUseCase) reject(cmd inventory.Command, userID int64, err error) {
	reason := RejectReason(err)
	uc.metrics.MovementRejected(cmd.Type(), reason)
	ev := uc.log.Warn()
	if reason == "internal" {
		ev = uc.log.Error()
	}
	ev.Err(err).
		Str("type", string(cmd.Type())).
		Int64("quantity", cmd.Amount()).
		Int64("user_id", userID).
		Str("reason", reason).
		Msg("movimiento rechazado")
}

// RejectReason clasifica un error del motor para métricas y logs.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInvalidTransfer):
		return "invalid_transfer"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}
