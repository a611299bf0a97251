package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func newProductLocationUseCase() (*usecase.ProductLocationUseCase, *fakeProductLocations, *fakeMovements) {
	pls := &fakeProductLocations{items: map[int64]*entity.ProductLocation{}}
	movs := &fakeMovements{usedCounters: map[int64]bool{}}
	products := &fakeProducts{items: map[int64]*entity.Product{1: {ID: 1, SKU: "A-1", Name: "Tornillo"}}}
	locations := &fakeLocations{items: map[int64]*entity.Location{1: {ID: 1, Name: "Bodega"}}}
	return usecase.NewProductLocationUseCase(pls, movs, products, locations), pls, movs
}

func TestProductLocation_CreaConStockCero(t *testing.T) {
	uc, _, _ := newProductLocationUseCase()

	res, err := uc.Create(context.Background(), dto.CreateProductLocationRequest{ProductID: 1, LocationID: 1, MinimumStock: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.CurrentStock)
	assert.Equal(t, int64(5), res.MinimumStock)
	assert.True(t, res.IsLowStock)
	require.NotNil(t, res.Product)
	assert.Equal(t, "A-1", res.Product.SKU)

	_, err = uc.Create(context.Background(), dto.CreateProductLocationRequest{ProductID: 1, LocationID: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductLocation_CreaConReferenciasInexistentes(t *testing.T) {
	uc, _, _ := newProductLocationUseCase()

	_, err := uc.Create(context.Background(), dto.CreateProductLocationRequest{ProductID: 9, LocationID: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(context.Background(), dto.CreateProductLocationRequest{ProductID: 1, LocationID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductLocation_SoloMinimoEditable(t *testing.T) {
	uc, pls, _ := newProductLocationUseCase()
	pls.items[1] = &entity.ProductLocation{ID: 1, ProductID: 1, LocationID: 1, CurrentStock: 12}

	min := int64(20)
	res, err := uc.UpdateMinimumStock(context.Background(), 1, dto.UpdateProductLocationRequest{MinimumStock: &min})
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.MinimumStock)
	assert.Equal(t, int64(12), res.CurrentStock)

	neg := int64(-1)
	_, err = uc.UpdateMinimumStock(context.Background(), 1, dto.UpdateProductLocationRequest{MinimumStock: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductLocation_Delete(t *testing.T) {
	uc, pls, movs := newProductLocationUseCase()
	ctx := context.Background()
	pls.items[1] = &entity.ProductLocation{ID: 1, CurrentStock: 3}
	pls.items[2] = &entity.ProductLocation{ID: 2}
	pls.items[3] = &entity.ProductLocation{ID: 3}
	movs.usedCounters[2] = true

	assert.ErrorIs(t, uc.Delete(ctx, 1), domain.ErrConflict, "con stock")
	assert.ErrorIs(t, uc.Delete(ctx, 2), domain.ErrConflict, "con historial")
	assert.ErrorIs(t, uc.Delete(ctx, 99), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, 3))
	assert.Equal(t, []int64{3}, pls.deleted)
}
