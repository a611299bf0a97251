package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: almacenamiento en memoria con transacciones y bloqueo por fila.
// Las escrituras de una transacción quedan en staging y sólo se publican en Commit.
// ──────────────────────────────────────────────────────────────────────────────

var errInjected = errors.New("fallo inyectado al insertar movimiento")

type memStore struct {
	mu        sync.Mutex
	counters  map[int64]*entity.ProductLocation
	rowLocks  map[int64]*sync.Mutex
	movements []*entity.Movement
	products  map[int64]bool
	locations map[int64]bool
	nextPLID  int64
	nextMovID int64

	failMovementCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		counters:  map[int64]*entity.ProductLocation{},
		rowLocks:  map[int64]*sync.Mutex{},
		products:  map[int64]bool{},
		locations: map[int64]bool{},
	}
}

// addCounter registra un contador con el stock indicado y devuelve su id.
func (s *memStore) addCounter(productID, locationID, stock int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPLID++
	id := s.nextPLID
	s.products[productID] = true
	s.locations[locationID] = true
	s.counters[id] = &entity.ProductLocation{ID: id, ProductID: productID, LocationID: locationID, CurrentStock: stock}
	s.rowLocks[id] = &sync.Mutex{}
	return id
}

func (s *memStore) stock(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[id].CurrentStock
}

// setStock altera el saldo sin pasar por el motor (simula corrupción).
func (s *memStore) setStock(id, stock int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[id].CurrentStock = stock
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// reader devuelve repositorios de sólo lectura sobre el estado confirmado.
func (s *memStore) reader() *memTx {
	return &memTx{store: s, staged: map[int64]int64{}, newCounters: map[int64]*entity.ProductLocation{}}
}

// Run implementa inventory.TxRunner.
func (s *memStore) Run(ctx context.Context, fn func(
	plRepo repository.ProductLocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx := s.reader()
	defer tx.release()
	if err := fn(tx, tx.asMovements()); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// ReadSnapshot implementa inventory.SnapshotReader: fn lee una copia congelada del estado
// confirmado, ajena a lo que se confirme mientras corre.
func (s *memStore) ReadSnapshot(ctx context.Context, fn func(
	plRepo repository.ProductLocationRepository,
	movRepo repository.MovementRepository,
) error) error {
	s.mu.Lock()
	frozen := newMemStore()
	for id, pl := range s.counters {
		cp := *pl
		frozen.counters[id] = &cp
		frozen.rowLocks[id] = &sync.Mutex{}
	}
	for _, m := range s.movements {
		cp := *m
		frozen.movements = append(frozen.movements, &cp)
	}
	s.mu.Unlock()

	tx := frozen.reader()
	return fn(tx, tx.asMovements())
}

type memTx struct {
	store       *memStore
	locked      []*sync.Mutex
	lockedIDs   map[int64]bool
	staged      map[int64]int64
	newCounters map[int64]*entity.ProductLocation
	movements   []*entity.Movement
}

func (tx *memTx) release() {
	for i := len(tx.locked) - 1; i >= 0; i-- {
		tx.locked[i].Unlock()
	}
	tx.locked = nil
}

func (tx *memTx) commit() {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, pl := range tx.newCounters {
		s.counters[id] = pl
		s.rowLocks[id] = &sync.Mutex{}
	}
	for id, stock := range tx.staged {
		s.counters[id].CurrentStock = stock
		s.counters[id].UpdatedAt = now
	}
	for _, m := range tx.movements {
		m.CreatedAt = now
		s.movements = append(s.movements, m)
	}
}

// ── ProductLocationRepository ────────────────────────────────────────────────

func (tx *memTx) Create(ctx context.Context, pl *entity.ProductLocation) error {
	return errors.New("no soportado")
}

func (tx *memTx) GetByID(ctx context.Context, id int64) (*entity.ProductLocation, error) {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	pl, ok := tx.store.counters[id]
	if !ok {
		return nil, nil
	}
	cp := *pl
	return &cp, nil
}

func (tx *memTx) GetForUpdate(ctx context.Context, id int64) (*entity.ProductLocation, error) {
	if pl, ok := tx.newCounters[id]; ok {
		cp := *pl
		if v, ok := tx.staged[id]; ok {
			cp.CurrentStock = v
		}
		return &cp, nil
	}
	tx.store.mu.Lock()
	lock, ok := tx.store.rowLocks[id]
	tx.store.mu.Unlock()
	if !ok {
		return nil, nil
	}
	if tx.lockedIDs == nil {
		tx.lockedIDs = map[int64]bool{}
	}
	if !tx.lockedIDs[id] {
		lock.Lock()
		tx.locked = append(tx.locked, lock)
		tx.lockedIDs[id] = true
	}
	tx.store.mu.Lock()
	cp := *tx.store.counters[id]
	tx.store.mu.Unlock()
	if v, ok := tx.staged[id]; ok {
		cp.CurrentStock = v
	}
	return &cp, nil
}

func (tx *memTx) EnsureForPair(ctx context.Context, productID, locationID int64) (int64, error) {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.products[productID] || !s.locations[locationID] {
		return 0, fmt.Errorf("%w: product %d or location %d", domain.ErrNotFound, productID, locationID)
	}
	for _, pl := range s.counters {
		if pl.ProductID == productID && pl.LocationID == locationID {
			return pl.ID, nil
		}
	}
	for _, pl := range tx.newCounters {
		if pl.ProductID == productID && pl.LocationID == locationID {
			return pl.ID, nil
		}
	}
	s.nextPLID++
	id := s.nextPLID
	tx.newCounters[id] = &entity.ProductLocation{ID: id, ProductID: productID, LocationID: locationID}
	return id, nil
}

func (tx *memTx) UpdateStock(ctx context.Context, id, stock int64) error {
	tx.staged[id] = stock
	return nil
}

func (tx *memTx) UpdateMinimumStock(ctx context.Context, id, minimum int64) error {
	return errors.New("no soportado")
}

func (tx *memTx) List(ctx context.Context, filter repository.ProductLocationFilter) ([]*entity.ProductLocation, error) {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	out := make([]*entity.ProductLocation, 0, len(tx.store.counters))
	for _, pl := range tx.store.counters {
		cp := *pl
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (tx *memTx) Delete(ctx context.Context, id int64) error {
	return errors.New("no soportado")
}

// ── MovementRepository ───────────────────────────────────────────────────────

// movementRepo adapta memTx al puerto de movimientos (los métodos chocan por nombre).
type movementRepo struct{ tx *memTx }

func (tx *memTx) asMovements() repository.MovementRepository { return movementRepo{tx: tx} }

func (r movementRepo) Create(ctx context.Context, m *entity.Movement) error {
	s := r.tx.store
	s.mu.Lock()
	fail := s.failMovementCreate
	if !fail {
		s.nextMovID++
		m.ID = s.nextMovID
	}
	s.mu.Unlock()
	if fail {
		return errInjected
	}
	r.tx.movements = append(r.tx.movements, m)
	return nil
}

func (r movementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r movementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range s.movements {
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.ProductLocationID != 0 && m.ProductLocationID != f.ProductLocationID &&
			(m.TargetProductLocationID == nil || *m.TargetProductLocationID != f.ProductLocationID) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r movementRepo) ExistsForProductLocation(ctx context.Context, id int64) (bool, error) {
	list, _ := r.List(ctx, repository.MovementFilter{ProductLocationID: id})
	return len(list) > 0, nil
}

func (r movementRepo) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	s := r.tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movements {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func repositoryFilterAll() repository.MovementFilter { return repository.MovementFilter{} }
