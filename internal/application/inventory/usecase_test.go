package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinv "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const testUserID int64 = 1

type recordedRejection struct {
	movementType entity.MovementType
	reason       string
}

type fakeRecorder struct {
	mu       sync.Mutex
	applied  int
	rejected []recordedRejection
}

func (f *fakeRecorder) MovementApplied(entity.MovementType, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied++
}

func (f *fakeRecorder) MovementRejected(t entity.MovementType, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejected = append(f.rejected, recordedRejection{t, reason})
}

type fakePublisher struct {
	mu       sync.Mutex
	balances []map[int64]int64
}

func (f *fakePublisher) PublishMovement(_ *entity.Movement, balances map[int64]int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances = append(f.balances, balances)
}

func newEngine(store *memStore) (*appinv.ApplyMovementUseCase, *fakeRecorder, *fakePublisher) {
	rec := &fakeRecorder{}
	pub := &fakePublisher{}
	return appinv.NewApplyMovementUseCase(store, pub, rec, zerolog.Nop()), rec, pub
}

// ──────────────────────────────────────────────────────────────────────────────
// Efectos básicos
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaYSalida(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 0)
	uc, rec, pub := newEngine(store)
	ctx := context.Background()

	m, err := uc.Apply(ctx, testUserID, inventory.Entry{ProductLocationID: pl, Quantity: 8, Notes: "compra"})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, entity.MovementTypeEntry, m.Type)
	assert.Equal(t, testUserID, m.UserID)

	_, err = uc.Apply(ctx, testUserID, inventory.Exit{ProductLocationID: pl, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(5), store.stock(pl))
	assert.Equal(t, 2, store.movementCount())
	assert.Equal(t, 2, rec.applied)
	require.Len(t, pub.balances, 2)
	assert.Equal(t, int64(5), pub.balances[1][pl])
}

func TestApply_SalidaMayorQueStockNoEscribe(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 10)
	uc, rec, pub := newEngine(store)

	_, err := uc.Apply(context.Background(), testUserID, inventory.Exit{ProductLocationID: pl, Quantity: 11})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Insufficient stock")

	assert.Equal(t, int64(10), store.stock(pl))
	assert.Equal(t, 0, store.movementCount())
	assert.Empty(t, pub.balances)
	require.Len(t, rec.rejected, 1)
	assert.Equal(t, "insufficient_stock", rec.rejected[0].reason)
}

func TestApply_SalidaHastaCero(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 4)
	uc, _, _ := newEngine(store)

	_, err := uc.Apply(context.Background(), testUserID, inventory.Exit{ProductLocationID: pl, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.stock(pl))
}

func TestApply_Ajustes(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 10)
	uc, _, _ := newEngine(store)
	ctx := context.Background()

	_, err := uc.Apply(ctx, testUserID, inventory.Adjustment{ProductLocationID: pl, Quantity: -3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), store.stock(pl))

	_, err = uc.Apply(ctx, testUserID, inventory.Adjustment{ProductLocationID: pl, Quantity: -11})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "negative stock")
	assert.Equal(t, int64(7), store.stock(pl))
	assert.Equal(t, 1, store.movementCount())
}

func TestApply_CantidadCeroRechazada(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 10)
	uc, rec, _ := newEngine(store)

	_, err := uc.Apply(context.Background(), testUserID, inventory.Adjustment{ProductLocationID: pl})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 0, store.movementCount())
	require.Len(t, rec.rejected, 1)
	assert.Equal(t, "invalid_quantity", rec.rejected[0].reason)
}

func TestApply_ContadorInexistente(t *testing.T) {
	store := newMemStore()
	uc, _, _ := newEngine(store)

	_, err := uc.Apply(context.Background(), testUserID, inventory.Exit{ProductLocationID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.movementCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_Traslado(t *testing.T) {
	store := newMemStore()
	src := store.addCounter(1, 1, 10)
	dst := store.addCounter(1, 2, 2)
	uc, _, _ := newEngine(store)

	m, err := uc.Apply(context.Background(), testUserID, inventory.Transfer{
		SourceProductLocationID: src, TargetProductLocationID: dst, Quantity: 6,
	})
	require.NoError(t, err)
	require.NotNil(t, m.TargetProductLocationID)
	assert.Equal(t, dst, *m.TargetProductLocationID)
	assert.Equal(t, int64(4), store.stock(src))
	assert.Equal(t, int64(8), store.stock(dst))
	assert.Equal(t, 1, store.movementCount(), "un traslado es un solo movimiento")
}

func TestApply_TrasladoASiMismo(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 10)
	uc, _, _ := newEngine(store)

	_, err := uc.Apply(context.Background(), testUserID, inventory.Transfer{
		SourceProductLocationID: pl, TargetProductLocationID: pl, Quantity: 1,
	})
	require.ErrorIs(t, err, domain.ErrInvalidTransfer)
	assert.Contains(t, err.Error(), "Source and target")
	assert.Equal(t, int64(10), store.stock(pl))
	assert.Equal(t, 0, store.movementCount())
}

// Si falla la inserción del movimiento ninguno de los dos contadores cambia.
func TestApply_TrasladoAtomicoAnteFallo(t *testing.T) {
	store := newMemStore()
	src := store.addCounter(1, 1, 10)
	dst := store.addCounter(1, 2, 0)
	store.failMovementCreate = true
	uc, rec, _ := newEngine(store)

	_, err := uc.Apply(context.Background(), testUserID, inventory.Transfer{
		SourceProductLocationID: src, TargetProductLocationID: dst, Quantity: 5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInjected))
	assert.Equal(t, int64(10), store.stock(src))
	assert.Equal(t, int64(0), store.stock(dst))
	assert.Equal(t, 0, store.movementCount())
	require.Len(t, rec.rejected, 1)
	assert.Equal(t, "internal", rec.rejected[0].reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada por producto + ubicación
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaCreaContador(t *testing.T) {
	store := newMemStore()
	existing := store.addCounter(1, 1, 0) // registra producto 1 y ubicación 1
	store.addCounter(2, 2, 0)             // registra producto 2 y ubicación 2
	uc, _, _ := newEngine(store)
	ctx := context.Background()

	m, err := uc.Apply(ctx, testUserID, inventory.Entry{ProductID: 1, LocationID: 2, Quantity: 7})
	require.NoError(t, err)
	assert.NotEqual(t, existing, m.ProductLocationID)
	assert.Equal(t, int64(7), store.stock(m.ProductLocationID))

	// segunda entrada al mismo par reutiliza el contador
	m2, err := uc.Apply(ctx, testUserID, inventory.Entry{ProductID: 1, LocationID: 2, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, m.ProductLocationID, m2.ProductLocationID)
	assert.Equal(t, int64(10), store.stock(m.ProductLocationID))
}

func TestApply_EntradaProductoInexistente(t *testing.T) {
	store := newMemStore()
	store.addCounter(1, 1, 0)
	uc, _, _ := newEngine(store)

	_, err := uc.Apply(context.Background(), testUserID, inventory.Entry{ProductID: 42, LocationID: 1, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.movementCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos salidas de 5 sobre stock 5: exactamente una gana.
func TestApply_SalidasConcurrentes(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 5)
	uc, _, _ := newEngine(store)

	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Apply(context.Background(), testUserID, inventory.Exit{ProductLocationID: pl, Quantity: 5})
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(0), store.stock(pl))
	assert.Equal(t, 1, store.movementCount())
}

// Traslados opuestos entre los mismos contadores no se bloquean entre sí y conservan el total.
func TestApply_TrasladosOpuestosSinInterbloqueo(t *testing.T) {
	store := newMemStore()
	a := store.addCounter(1, 1, 100)
	b := store.addCounter(1, 2, 100)
	uc, _, _ := newEngine(store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = uc.Apply(context.Background(), testUserID, inventory.Transfer{SourceProductLocationID: a, TargetProductLocationID: b, Quantity: 3})
			}()
			go func() {
				defer wg.Done()
				_, _ = uc.Apply(context.Background(), testUserID, inventory.Transfer{SourceProductLocationID: b, TargetProductLocationID: a, Quantity: 2})
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("los traslados opuestos quedaron bloqueados")
	}
	assert.Equal(t, int64(200), store.stock(a)+store.stock(b))
	assert.GreaterOrEqual(t, store.stock(a), int64(0))
	assert.GreaterOrEqual(t, store.stock(b), int64(0))
}

// Salidas y entradas concurrentes: el saldo final coincide con la suma del historial.
func TestApply_ProyeccionConcurrente(t *testing.T) {
	store := newMemStore()
	pl := store.addCounter(1, 1, 20)
	uc, _, _ := newEngine(store)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var cmd inventory.Command = inventory.Exit{ProductLocationID: pl, Quantity: 3}
			if i%3 == 0 {
				cmd = inventory.Entry{ProductLocationID: pl, Quantity: 2}
			}
			_, _ = uc.Apply(context.Background(), testUserID, cmd)
		}(i)
	}
	wg.Wait()

	movs, err := store.reader().asMovements().List(context.Background(), repositoryFilterAll())
	require.NoError(t, err)
	replayed := inventory.Replay(movs)
	assert.Equal(t, store.stock(pl), 20+replayed[pl])
	assert.GreaterOrEqual(t, store.stock(pl), int64(0))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y verificación
// ──────────────────────────────────────────────────────────────────────────────

func TestQuery_ListaTrasladosMasRecientePrimero(t *testing.T) {
	store := newMemStore()
	a := store.addCounter(1, 1, 0)
	b := store.addCounter(1, 2, 0)
	uc, _, _ := newEngine(store)
	ctx := context.Background()

	_, err := uc.Apply(ctx, testUserID, inventory.Entry{ProductLocationID: a, Quantity: 10})
	require.NoError(t, err)
	t1, err := uc.Apply(ctx, testUserID, inventory.Transfer{SourceProductLocationID: a, TargetProductLocationID: b, Quantity: 2})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	t2, err := uc.Apply(ctx, testUserID, inventory.Transfer{SourceProductLocationID: b, TargetProductLocationID: a, Quantity: 1})
	require.NoError(t, err)

	q := appinv.NewMovementQueryUseCase(store.reader().asMovements(), store)
	list, err := q.List(ctx, dto.MovementFilter{Type: "TRANSFER"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, t2.ID, list[0].ID)
	assert.Equal(t, t1.ID, list[1].ID)

	_, err = q.List(ctx, dto.MovementFilter{Type: "SALE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuery_GetByIDInexistente(t *testing.T) {
	store := newMemStore()
	q := appinv.NewMovementQueryUseCase(store.reader().asMovements(), store)

	_, err := q.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_VerifyDetectaDiferencias(t *testing.T) {
	store := newMemStore()
	a := store.addCounter(1, 1, 0)
	b := store.addCounter(1, 2, 0)
	uc, _, _ := newEngine(store)
	ctx := context.Background()

	_, err := uc.Apply(ctx, testUserID, inventory.Entry{ProductLocationID: a, Quantity: 9})
	require.NoError(t, err)
	_, err = uc.Apply(ctx, testUserID, inventory.Transfer{SourceProductLocationID: a, TargetProductLocationID: b, Quantity: 4})
	require.NoError(t, err)

	q := appinv.NewMovementQueryUseCase(store.reader().asMovements(), store)
	res, err := q.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, res.Consistent)
	assert.Equal(t, 2, res.CheckedCounters)
	assert.Equal(t, 2, res.CheckedMovements)

	store.setStock(b, 40)
	res, err = q.Verify(ctx)
	require.NoError(t, err)
	assert.False(t, res.Consistent)
	require.Len(t, res.Discrepancies, 1)
	assert.Equal(t, b, res.Discrepancies[0].ProductLocationID)
	assert.Equal(t, int64(4), res.Discrepancies[0].ReplayedStock)
}

// afterCounters ejecuta hook justo después de leer los contadores.
type afterCounters struct {
	repository.ProductLocationRepository
	hook func()
}

func (a afterCounters) List(ctx context.Context, f repository.ProductLocationFilter) ([]*entity.ProductLocation, error) {
	out, err := a.ProductLocationRepository.List(ctx, f)
	a.hook()
	return out, err
}

// interleavedSnapshot confirma escrituras entre la lectura de contadores y la de movimientos.
type interleavedSnapshot struct {
	inner appinv.SnapshotReader
	hook  func()
}

func (s interleavedSnapshot) ReadSnapshot(ctx context.Context, fn func(
	plRepo repository.ProductLocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	return s.inner.ReadSnapshot(ctx, func(plRepo repository.ProductLocationRepository, movRepo repository.MovementRepository) error {
		return fn(afterCounters{ProductLocationRepository: plRepo, hook: s.hook}, movRepo)
	})
}

func TestQuery_VerifyConEscriturasConcurrentes(t *testing.T) {
	store := newMemStore()
	a := store.addCounter(1, 1, 0)
	uc, _, _ := newEngine(store)
	ctx := context.Background()

	_, err := uc.Apply(ctx, testUserID, inventory.Entry{ProductLocationID: a, Quantity: 5})
	require.NoError(t, err)

	var exitErr error
	snapshot := interleavedSnapshot{inner: store, hook: func() {
		_, exitErr = uc.Apply(ctx, testUserID, inventory.Exit{ProductLocationID: a, Quantity: 3})
	}}
	q := appinv.NewMovementQueryUseCase(store.reader().asMovements(), snapshot)

	res, err := q.Verify(ctx)
	require.NoError(t, err)
	require.NoError(t, exitErr)
	assert.True(t, res.Consistent)
	assert.Equal(t, 1, res.CheckedMovements)
	assert.Equal(t, int64(2), store.stock(a))

	res, err = appinv.NewMovementQueryUseCase(store.reader().asMovements(), store).Verify(ctx)
	require.NoError(t, err)
	assert.True(t, res.Consistent)
	assert.Equal(t, 2, res.CheckedMovements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptador del request HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestCommandFromRequest(t *testing.T) {
	cmd, err := appinv.CommandFromRequest(dto.CreateMovementRequest{Type: "TRANSFER", SourceProductLocationID: 1, TargetProductLocationID: 2, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, inventory.Transfer{SourceProductLocationID: 1, TargetProductLocationID: 2, Quantity: 3}, cmd)

	cmd, err = appinv.CommandFromRequest(dto.CreateMovementRequest{Type: "ENTRY", ProductID: 3, LocationID: 4, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, inventory.Entry{ProductID: 3, LocationID: 4, Quantity: 1}, cmd)

	_, err = appinv.CommandFromRequest(dto.CreateMovementRequest{Type: "TRANSFER", SourceProductLocationID: 1, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appinv.CommandFromRequest(dto.CreateMovementRequest{Type: "EXIT", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appinv.CommandFromRequest(dto.CreateMovementRequest{Type: "RETURN", ProductLocationID: 1, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToRepositoryFilter_FechaSinHoraIncluyeDia(t *testing.T) {
	f, err := appinv.ToRepositoryFilter(dto.MovementFilter{FromDate: "2024-03-01", ToDate: "2024-03-01"})
	require.NoError(t, err)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, 23, f.To.Hour())
	assert.True(t, f.To.After(*f.From))

	_, err = appinv.ToRepositoryFilter(dto.MovementFilter{FromDate: "2024-03-02", ToDate: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = appinv.ToRepositoryFilter(dto.MovementFilter{FromDate: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
