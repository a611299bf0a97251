package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Repositorios en memoria mínimos para probar reglas de los casos de uso.

type fakeCategories struct{ items map[int64]*entity.Category }

func (f *fakeCategories) Create(_ context.Context, c *entity.Category) error {
	c.ID = int64(len(f.items) + 1)
	f.items[c.ID] = c
	return nil
}
func (f *fakeCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	return f.items[id], nil
}
func (f *fakeCategories) Update(context.Context, *entity.Category) error { return nil }
func (f *fakeCategories) List(context.Context) ([]*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategories) Delete(context.Context, int64) error { return nil }

type fakeSuppliers struct{ items map[int64]*entity.Supplier }

func (f *fakeSuppliers) Create(context.Context, *entity.Supplier) error { return nil }
func (f *fakeSuppliers) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	return f.items[id], nil
}
func (f *fakeSuppliers) Update(context.Context, *entity.Supplier) error   { return nil }
func (f *fakeSuppliers) List(context.Context) ([]*entity.Supplier, error) { return nil, nil }
func (f *fakeSuppliers) Delete(context.Context, int64) error              { return nil }

type fakeLocations struct{ items map[int64]*entity.Location }

func (f *fakeLocations) Create(context.Context, *entity.Location) error { return nil }
func (f *fakeLocations) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	return f.items[id], nil
}
func (f *fakeLocations) Update(context.Context, *entity.Location) error   { return nil }
func (f *fakeLocations) List(context.Context) ([]*entity.Location, error) { return nil, nil }
func (f *fakeLocations) Delete(context.Context, int64) error              { return nil }

type fakeProducts struct {
	items map[int64]*entity.Product
	next  int64
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.next++
	p.ID = f.next
	f.items[p.ID] = p
	return nil
}
func (f *fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return f.items[id], nil
}
func (f *fakeProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.items {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.items[p.ID] = p
	return nil
}
func (f *fakeProducts) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.items {
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeProducts) Delete(context.Context, int64) error { return nil }

type fakeProductLocations struct {
	items   map[int64]*entity.ProductLocation
	deleted []int64
}

func (f *fakeProductLocations) Create(_ context.Context, pl *entity.ProductLocation) error {
	for _, other := range f.items {
		if other.ProductID == pl.ProductID && other.LocationID == pl.LocationID {
			return domain.ErrDuplicate
		}
	}
	pl.ID = int64(len(f.items) + 1)
	f.items[pl.ID] = pl
	return nil
}
func (f *fakeProductLocations) GetByID(_ context.Context, id int64) (*entity.ProductLocation, error) {
	pl, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *pl
	return &cp, nil
}
func (f *fakeProductLocations) GetForUpdate(ctx context.Context, id int64) (*entity.ProductLocation, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeProductLocations) EnsureForPair(context.Context, int64, int64) (int64, error) {
	return 0, domain.ErrNotFound
}
func (f *fakeProductLocations) UpdateStock(_ context.Context, id, stock int64) error {
	f.items[id].CurrentStock = stock
	return nil
}
func (f *fakeProductLocations) UpdateMinimumStock(_ context.Context, id, minimum int64) error {
	f.items[id].MinimumStock = minimum
	return nil
}
func (f *fakeProductLocations) List(context.Context, repository.ProductLocationFilter) ([]*entity.ProductLocation, error) {
	return nil, nil
}
func (f *fakeProductLocations) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMovements struct{ usedCounters map[int64]bool }

func (f *fakeMovements) Create(context.Context, *entity.Movement) error { return nil }
func (f *fakeMovements) GetByID(context.Context, int64) (*entity.Movement, error) {
	return nil, nil
}
func (f *fakeMovements) List(context.Context, repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}
func (f *fakeMovements) ExistsForProductLocation(_ context.Context, id int64) (bool, error) {
	return f.usedCounters[id], nil
}
func (f *fakeMovements) ExistsForUser(context.Context, int64) (bool, error) { return false, nil }

type fakeUsers struct {
	items map[int64]*entity.User
	next  int64
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.next++
	u.ID = f.next
	f.items[u.ID] = u
	return nil
}
func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return f.items[id], nil
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.items[u.ID] = u
	return nil
}
func (f *fakeUsers) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}
