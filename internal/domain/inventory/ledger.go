package inventory

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MaxNotesLength límite de caracteres de las notas de un movimiento.
const MaxNotesLength = 500

// Validate aplica las reglas que no dependen del estado, en este orden:
// cantidad distinta de cero, signo según tipo, origen distinto de destino.
func Validate(cmd Command) error {
	q := cmd.Amount()
	if q == 0 {
		return fmt.Errorf("%w: quantity must not be zero", domain.ErrInvalidQuantity)
	}
	if cmd.Type() != entity.MovementTypeAdjustment && q < 0 {
		return fmt.Errorf("%w: quantity must be positive for %s", domain.ErrInvalidQuantity, cmd.Type())
	}
	if t, ok := cmd.(Transfer); ok && t.SourceProductLocationID == t.TargetProductLocationID {
		return domain.ErrInvalidTransfer
	}
	if utf8.RuneCountInString(cmd.Note()) > MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", domain.ErrInvalidInput, MaxNotesLength)
	}
	return nil
}

// LockOrder devuelve los contadores que hay que bloquear, sin repetir y en orden ascendente.
// Bloquear siempre en el mismo orden evita interbloqueos entre traslados opuestos.
func LockOrder(cmd Command) []int64 {
	effs := cmd.effects()
	ids := make([]int64, 0, len(effs))
	seen := make(map[int64]bool, len(effs))
	for _, e := range effs {
		if !seen[e.ProductLocationID] {
			seen[e.ProductLocationID] = true
			ids = append(ids, e.ProductLocationID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Plan calcula los saldos resultantes a partir de los saldos actuales (ya bloqueados).
// Devuelve un *domain.StockError si algún contador quedaría negativo y ErrInvalidQuantity
// si superaría el máximo de int64.
func Plan(cmd Command, current map[int64]int64) (map[int64]int64, error) {
	next := make(map[int64]int64, len(current))
	for id, v := range current {
		next[id] = v
	}
	for _, e := range cmd.effects() {
		stock, ok := next[e.ProductLocationID]
		if !ok {
			return nil, fmt.Errorf("%w: product location %d", domain.ErrNotFound, e.ProductLocationID)
		}
		if e.Delta > 0 && stock > math.MaxInt64-e.Delta {
			return nil, fmt.Errorf("%w: stock of product location %d would exceed %d", domain.ErrInvalidQuantity, e.ProductLocationID, int64(math.MaxInt64))
		}
		if stock+e.Delta < 0 {
			return nil, &domain.StockError{
				ProductLocationID: e.ProductLocationID,
				Available:         stock,
				Delta:             e.Delta,
				Adjustment:        cmd.Type() == entity.MovementTypeAdjustment,
			}
		}
		next[e.ProductLocationID] = stock + e.Delta
	}
	return next, nil
}

// Record arma el movimiento a persistir para cmd. ID y CreatedAt los asigna el almacenamiento.
func Record(cmd Command, userID int64) entity.Movement {
	m := entity.Movement{
		Type:     cmd.Type(),
		Quantity: cmd.Amount(),
		UserID:   userID,
		Notes:    cmd.Note(),
	}
	switch c := cmd.(type) {
	case Entry:
		m.ProductLocationID = c.ProductLocationID
	case Exit:
		m.ProductLocationID = c.ProductLocationID
	case Adjustment:
		m.ProductLocationID = c.ProductLocationID
	case Transfer:
		m.ProductLocationID = c.SourceProductLocationID
		target := c.TargetProductLocationID
		m.TargetProductLocationID = &target
	}
	return m
}

// Replay recalcula el saldo de cada contador sumando los efectos de los movimientos
// en orden de registro (ID ascendente), sin importar el orden en que lleguen.
func Replay(movements []*entity.Movement) map[int64]int64 {
	ordered := make([]*entity.Movement, len(movements))
	copy(ordered, movements)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	totals := make(map[int64]int64)
	for _, m := range ordered {
		for _, e := range EffectsOf(m) {
			totals[e.ProductLocationID] += e.Delta
		}
	}
	return totals
}
