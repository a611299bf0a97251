package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductLocationUseCase administra los contadores de stock. El saldo sólo cambia
// con movimientos; aquí se abren, se consultan, se ajusta el mínimo y se eliminan.
type ProductLocationUseCase struct {
	repo         repository.ProductLocationRepository
	movRepo      repository.MovementRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewProductLocationUseCase construye el caso de uso.
func NewProductLocationUseCase(
	repo repository.ProductLocationRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *ProductLocationUseCase {
	return &ProductLocationUseCase{repo: repo, movRepo: movRepo, productRepo: productRepo, locationRepo: locationRepo}
}

// Create abre un contador con stock 0. ErrDuplicate si el par ya existe.
func (uc *ProductLocationUseCase) Create(ctx context.Context, in dto.CreateProductLocationRequest) (*dto.ProductLocationResponse, error) {
	if in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: minimumStock must not be negative", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, in.ProductID)
	}
	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: location %d", domain.ErrNotFound, in.LocationID)
	}
	now := time.Now()
	pl := &entity.ProductLocation{
		ProductID:    in.ProductID,
		LocationID:   in.LocationID,
		MinimumStock: in.MinimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, pl); err != nil {
		return nil, err
	}
	pl.Product, pl.Location = product, location
	return dto.FromProductLocation(pl), nil
}

// GetByID obtiene un contador con producto y ubicación.
func (uc *ProductLocationUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductLocationResponse, error) {
	pl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromProductLocation(pl), nil
}

// List lista contadores filtrando por producto, ubicación o stock bajo.
func (uc *ProductLocationUseCase) List(ctx context.Context, in dto.ProductLocationFilter) ([]dto.ProductLocationResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductLocationFilter{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		LowStock:   in.LowStock,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductLocationResponse, 0, len(list))
	for _, pl := range list {
		items = append(items, *dto.FromProductLocation(pl))
	}
	return items, nil
}

// UpdateMinimumStock cambia el umbral de stock bajo.
func (uc *ProductLocationUseCase) UpdateMinimumStock(ctx context.Context, id int64, in dto.UpdateProductLocationRequest) (*dto.ProductLocationResponse, error) {
	if in.MinimumStock == nil || *in.MinimumStock < 0 {
		return nil, fmt.Errorf("%w: minimumStock must be zero or greater", domain.ErrInvalidInput)
	}
	pl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateMinimumStock(ctx, id, *in.MinimumStock); err != nil {
		return nil, err
	}
	pl.MinimumStock = *in.MinimumStock
	pl.UpdatedAt = time.Now()
	return dto.FromProductLocation(pl), nil
}

// Delete elimina un contador vacío y sin historial.
func (uc *ProductLocationUseCase) Delete(ctx context.Context, id int64) error {
	pl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pl == nil {
		return domain.ErrNotFound
	}
	if pl.CurrentStock != 0 {
		return fmt.Errorf("%w: product location %d still holds %d units", domain.ErrConflict, id, pl.CurrentStock)
	}
	used, err := uc.movRepo.ExistsForProductLocation(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: product location %d has movements", domain.ErrConflict, id)
	}
	return uc.repo.Delete(ctx, id)
}
