package inventory_test

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validate
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_Reglas(t *testing.T) {
	cases := []struct {
		name string
		cmd  inventory.Command
		want error
	}{
		{"entrada positiva", inventory.Entry{ProductLocationID: 1, Quantity: 5}, nil},
		{"entrada cero", inventory.Entry{ProductLocationID: 1}, domain.ErrInvalidQuantity},
		{"entrada negativa", inventory.Entry{ProductLocationID: 1, Quantity: -1}, domain.ErrInvalidQuantity},
		{"salida negativa", inventory.Exit{ProductLocationID: 1, Quantity: -3}, domain.ErrInvalidQuantity},
		{"ajuste negativo permitido", inventory.Adjustment{ProductLocationID: 1, Quantity: -3}, nil},
		{"ajuste cero", inventory.Adjustment{ProductLocationID: 1}, domain.ErrInvalidQuantity},
		{"traslado negativo", inventory.Transfer{SourceProductLocationID: 1, TargetProductLocationID: 2, Quantity: -1}, domain.ErrInvalidQuantity},
		{"traslado a sí mismo", inventory.Transfer{SourceProductLocationID: 4, TargetProductLocationID: 4, Quantity: 1}, domain.ErrInvalidTransfer},
		{"notas demasiado largas", inventory.Exit{ProductLocationID: 1, Quantity: 1, Notes: strings.Repeat("ñ", 501)}, domain.ErrInvalidInput},
		{"notas en el límite", inventory.Exit{ProductLocationID: 1, Quantity: 1, Notes: strings.Repeat("ñ", 500)}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.Validate(tc.cmd)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// La cantidad cero se reporta antes que el traslado a sí mismo.
func TestValidate_OrdenCantidadAntesQueTraslado(t *testing.T) {
	err := inventory.Validate(inventory.Transfer{SourceProductLocationID: 3, TargetProductLocationID: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestValidate_MensajeTraslado(t *testing.T) {
	err := inventory.Validate(inventory.Transfer{SourceProductLocationID: 3, TargetProductLocationID: 3, Quantity: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Source and target")
}

// ──────────────────────────────────────────────────────────────────────────────
// LockOrder / Plan
// ──────────────────────────────────────────────────────────────────────────────

func TestLockOrder_AscendenteParaTrasladosOpuestos(t *testing.T) {
	ab := inventory.Transfer{SourceProductLocationID: 9, TargetProductLocationID: 2, Quantity: 1}
	ba := inventory.Transfer{SourceProductLocationID: 2, TargetProductLocationID: 9, Quantity: 1}
	assert.Equal(t, []int64{2, 9}, inventory.LockOrder(ab))
	assert.Equal(t, []int64{2, 9}, inventory.LockOrder(ba))
}

func TestPlan_Efectos(t *testing.T) {
	stocks := map[int64]int64{1: 10, 2: 0}

	next, err := inventory.Plan(inventory.Entry{ProductLocationID: 1, Quantity: 5}, stocks)
	require.NoError(t, err)
	assert.Equal(t, int64(15), next[1])

	next, err = inventory.Plan(inventory.Exit{ProductLocationID: 1, Quantity: 10}, stocks)
	require.NoError(t, err, "dejar el saldo exactamente en cero está permitido")
	assert.Equal(t, int64(0), next[1])

	next, err = inventory.Plan(inventory.Transfer{SourceProductLocationID: 1, TargetProductLocationID: 2, Quantity: 4}, stocks)
	require.NoError(t, err)
	assert.Equal(t, int64(6), next[1])
	assert.Equal(t, int64(4), next[2])

	// el mapa de entrada no se modifica
	assert.Equal(t, int64(10), stocks[1])
}

func TestPlan_SalidaMayorQueStock(t *testing.T) {
	_, err := inventory.Plan(inventory.Exit{ProductLocationID: 1, Quantity: 11}, map[int64]int64{1: 10})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Insufficient stock")

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int64(10), se.Available)
	assert.Equal(t, int64(-11), se.Delta)
}

func TestPlan_DesbordamientoEsCantidadInvalida(t *testing.T) {
	_, err := inventory.Plan(inventory.Entry{ProductLocationID: 1, Quantity: math.MaxInt64}, map[int64]int64{1: 1})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.Plan(inventory.Transfer{SourceProductLocationID: 1, TargetProductLocationID: 2, Quantity: 5},
		map[int64]int64{1: 10, 2: math.MaxInt64 - 4})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	next, err := inventory.Plan(inventory.Entry{ProductLocationID: 1, Quantity: math.MaxInt64 - 1}, map[int64]int64{1: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), next[1])
}

func TestPlan_AjusteNegativo(t *testing.T) {
	next, err := inventory.Plan(inventory.Adjustment{ProductLocationID: 1, Quantity: -3}, map[int64]int64{1: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(7), next[1])

	_, err = inventory.Plan(inventory.Adjustment{ProductLocationID: 1, Quantity: -11}, map[int64]int64{1: 10})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "negative stock")
	assert.NotContains(t, err.Error(), "Insufficient stock")
}

func TestPlan_ContadorDesconocido(t *testing.T) {
	_, err := inventory.Plan(inventory.Exit{ProductLocationID: 7, Quantity: 1}, map[int64]int64{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Record / Replay
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_Traslado(t *testing.T) {
	m := inventory.Record(inventory.Transfer{SourceProductLocationID: 1, TargetProductLocationID: 2, Quantity: 3, Notes: "rebalanceo"}, 42)
	assert.Equal(t, entity.MovementTypeTransfer, m.Type)
	assert.Equal(t, int64(1), m.ProductLocationID)
	require.NotNil(t, m.TargetProductLocationID)
	assert.Equal(t, int64(2), *m.TargetProductLocationID)
	assert.Equal(t, int64(42), m.UserID)
	assert.Equal(t, "rebalanceo", m.Notes)
}

// Aplicar una secuencia aleatoria con Plan y luego reconstruir con Replay da los mismos saldos.
func TestReplay_CoincideConSaldos(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	stocks := map[int64]int64{1: 0, 2: 0, 3: 0}
	var log []*entity.Movement

	for i := 0; i < 500; i++ {
		var cmd inventory.Command
		pl := int64(rng.Intn(3) + 1)
		q := int64(rng.Intn(10) + 1)
		switch rng.Intn(4) {
		case 0:
			cmd = inventory.Entry{ProductLocationID: pl, Quantity: q}
		case 1:
			cmd = inventory.Exit{ProductLocationID: pl, Quantity: q}
		case 2:
			if rng.Intn(2) == 0 {
				q = -q
			}
			cmd = inventory.Adjustment{ProductLocationID: pl, Quantity: q}
		default:
			cmd = inventory.Transfer{SourceProductLocationID: pl, TargetProductLocationID: pl%3 + 1, Quantity: q}
		}
		next, err := inventory.Plan(cmd, stocks)
		if err != nil {
			continue
		}
		stocks = next
		m := inventory.Record(cmd, 1)
		m.ID = int64(len(log) + 1)
		log = append(log, &m)
	}

	// orden de llegada invertido: Replay ordena por ID
	reversed := make([]*entity.Movement, len(log))
	for i, m := range log {
		reversed[len(log)-1-i] = m
	}
	replayed := inventory.Replay(reversed)
	for id, stock := range stocks {
		assert.Equal(t, stock, replayed[id], "contador %d", id)
		assert.GreaterOrEqual(t, stock, int64(0))
	}
}
