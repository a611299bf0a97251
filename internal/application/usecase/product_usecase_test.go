package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func newProductUseCase() *usecase.ProductUseCase {
	products := &fakeProducts{items: map[int64]*entity.Product{}}
	categories := &fakeCategories{items: map[int64]*entity.Category{1: {ID: 1, Name: "Ferretería"}}}
	suppliers := &fakeSuppliers{items: map[int64]*entity.Supplier{}}
	return usecase.NewProductUseCase(products, categories, suppliers)
}

func TestNormalizeSKU(t *testing.T) {
	assert.Equal(t, "ABC-12", usecase.NormalizeSKU("  abc-12 "))
}

func TestProduct_CreateSKUDuplicado(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.ProductRequest{SKU: "tor-1", Name: "Tornillo", Price: decimal.RequireFromString("1.50"), CategoryID: 1})
	require.NoError(t, err)
	assert.Equal(t, "TOR-1", p.SKU)

	_, err = uc.Create(ctx, dto.ProductRequest{SKU: "TOR-1 ", Name: "Otro", CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProduct_CreateValidaReferencias(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ProductRequest{SKU: "X", Name: "X", CategoryID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	supplier := int64(3)
	_, err = uc.Create(ctx, dto.ProductRequest{SKU: "X", Name: "X", CategoryID: 1, SupplierID: &supplier})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.ProductRequest{SKU: "X", Name: "X", CategoryID: 1, Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
