package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// MovementQueryUseCase lecturas del historial y verificación del libro.
type MovementQueryUseCase struct {
	movRepo  repository.MovementRepository
	snapshot SnapshotReader
}

// NewMovementQueryUseCase construye el caso de uso. Verify lee contadores y movimientos
// dentro de snapshot.
func NewMovementQueryUseCase(movRepo repository.MovementRepository, snapshot SnapshotReader) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, snapshot: snapshot}
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
func (uc *MovementQueryUseCase) List(ctx context.Context, in dto.MovementFilter) ([]dto.MovementResponse, error) {
	filter, err := ToRepositoryFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *dto.FromMovement(m))
	}
	return out, nil
}

// GetByID devuelve un movimiento o ErrNotFound.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromMovement(m), nil
}

// Verify recalcula cada contador a partir de su historial y reporta los que difieren
// del saldo materializado. Ambas lecturas salen de la misma instantánea, así un movimiento
// confirmado en medio no aparece como diferencia.
func (uc *MovementQueryUseCase) Verify(ctx context.Context) (*dto.LedgerVerification, error) {
	var (
		counters  []*entity.ProductLocation
		movements []*entity.Movement
	)
	err := uc.snapshot.ReadSnapshot(ctx, func(plRepo repository.ProductLocationRepository, movRepo repository.MovementRepository) error {
		var err error
		if counters, err = plRepo.List(ctx, repository.ProductLocationFilter{}); err != nil {
			return err
		}
		movements, err = movRepo.List(ctx, repository.MovementFilter{})
		return err
	})
	if err != nil {
		return nil, err
	}
	replayed := inventory.Replay(movements)

	res := &dto.LedgerVerification{
		CheckedCounters:  len(counters),
		CheckedMovements: len(movements),
		Discrepancies:    []dto.LedgerDiscrepancy{},
	}
	for _, pl := range counters {
		if want := replayed[pl.ID]; want != pl.CurrentStock {
			res.Discrepancies = append(res.Discrepancies, dto.LedgerDiscrepancy{
				ProductLocationID: pl.ID,
				CurrentStock:      pl.CurrentStock,
				ReplayedStock:     want,
			})
		}
	}
	res.Consistent = len(res.Discrepancies) == 0
	return res, nil
}

// ToRepositoryFilter valida y convierte el filtro HTTP. toDate sin hora incluye el día completo.
func ToRepositoryFilter(in dto.MovementFilter) (repository.MovementFilter, error) {
	in.PageRequest.Normalize()
	f := repository.MovementFilter{
		ProductLocationID: in.ProductLocationID,
		ProductID:         in.ProductID,
		LocationID:        in.LocationID,
		Limit:             in.Limit,
		Offset:            in.Offset,
	}
	if in.Type != "" {
		t := entity.MovementType(strings.ToUpper(in.Type))
		if !t.Valid() {
			return f, fmt.Errorf("%w: unknown movement type %q", domain.ErrInvalidInput, in.Type)
		}
		f.Type = t
	}
	if in.FromDate != "" {
		from, _, err := parseDate(in.FromDate)
		if err != nil {
			return f, fmt.Errorf("%w: fromDate: %v", domain.ErrInvalidInput, err)
		}
		f.From = &from
	}
	if in.ToDate != "" {
		to, dateOnly, err := parseDate(in.ToDate)
		if err != nil {
			return f, fmt.Errorf("%w: toDate: %v", domain.ErrInvalidInput, err)
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("%w: fromDate must not be after toDate", domain.ErrInvalidInput)
	}
	return f, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", s)
	}
	return t, true, nil
}
