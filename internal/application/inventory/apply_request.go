package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// ApplyFromRequest adapta el body HTTP al caso de uso Apply(ctx, userID, Command).
func (uc *ApplyMovementUseCase) ApplyFromRequest(ctx context.Context, userID int64, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	cmd, err := CommandFromRequest(in)
	if err != nil {
		return nil, err
	}
	m, err := uc.Apply(ctx, userID, cmd)
	if err != nil {
		return nil, err
	}
	return dto.FromMovement(m), nil
}

// CommandFromRequest arma la variante de Command que corresponde al tipo del request.
func CommandFromRequest(in dto.CreateMovementRequest) (inventory.Command, error) {
	switch entity.MovementType(in.Type) {
	case entity.MovementTypeEntry:
		if in.ProductLocationID == 0 && (in.ProductID == 0 || in.LocationID == 0) {
			return nil, fmt.Errorf("%w: productLocationId or productId and locationId are required", domain.ErrInvalidInput)
		}
		return inventory.Entry{
			ProductLocationID: in.ProductLocationID,
			ProductID:         in.ProductID,
			LocationID:        in.LocationID,
			Quantity:          in.Quantity,
			Notes:             in.Notes,
		}, nil
	case entity.MovementTypeExit:
		if in.ProductLocationID == 0 {
			return nil, fmt.Errorf("%w: productLocationId is required", domain.ErrInvalidInput)
		}
		return inventory.Exit{ProductLocationID: in.ProductLocationID, Quantity: in.Quantity, Notes: in.Notes}, nil
	case entity.MovementTypeAdjustment:
		if in.ProductLocationID == 0 {
			return nil, fmt.Errorf("%w: productLocationId is required", domain.ErrInvalidInput)
		}
		return inventory.Adjustment{ProductLocationID: in.ProductLocationID, Quantity: in.Quantity, Notes: in.Notes}, nil
	case entity.MovementTypeTransfer:
		source := in.SourceProductLocationID
		if source == 0 {
			source = in.ProductLocationID
		}
		if source == 0 || in.TargetProductLocationID == 0 {
			return nil, fmt.Errorf("%w: sourceProductLocationId and targetProductLocationId are required", domain.ErrInvalidInput)
		}
		return inventory.Transfer{
			SourceProductLocationID: source,
			TargetProductLocationID: in.TargetProductLocationID,
			Quantity:                in.Quantity,
			Notes:                   in.Notes,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown movement type %q", domain.ErrInvalidInput, in.Type)
}
