package dto

import "time"

// CreateMovementRequest body de POST /api/movements. Los campos requeridos dependen de Type:
// ENTRY productLocationId (o productId + locationId); EXIT y ADJUSTMENT productLocationId;
// TRANSFER sourceProductLocationId y targetProductLocationId.
type CreateMovementRequest struct {
	Type                    string `json:"type" validate:"required,oneof=ENTRY EXIT ADJUSTMENT TRANSFER"`
	Quantity                int64  `json:"quantity"`
	ProductLocationID       int64  `json:"productLocationId" validate:"min=0"`
	ProductID               int64  `json:"productId" validate:"min=0"`
	LocationID              int64  `json:"locationId" validate:"min=0"`
	SourceProductLocationID int64  `json:"sourceProductLocationId" validate:"min=0"`
	TargetProductLocationID int64  `json:"targetProductLocationId" validate:"min=0"`
	Notes                   string `json:"notes" validate:"max=500"`
}

// MovementFilter query de GET /api/movements y de los reportes de movimientos.
// Fechas en RFC3339 o YYYY-MM-DD.
type MovementFilter struct {
	Type              string `query:"type" validate:"omitempty,oneof=ENTRY EXIT ADJUSTMENT TRANSFER"`
	ProductLocationID int64  `query:"productLocationId"`
	ProductID         int64  `query:"productId"`
	LocationID        int64  `query:"locationId"`
	FromDate          string `query:"fromDate"`
	ToDate            string `query:"toDate"`
	PageRequest
}

// MovementResponse salida de un movimiento con datos de producto, ubicación y usuario.
type MovementResponse struct {
	ID                      int64                    `json:"id"`
	Type                    string                   `json:"type"`
	Quantity                int64                    `json:"quantity"`
	ProductLocationID       int64                    `json:"productLocationId"`
	TargetProductLocationID *int64                   `json:"targetProductLocationId,omitempty"`
	UserID                  int64                    `json:"userId"`
	Notes                   string                   `json:"notes,omitempty"`
	CreatedAt               time.Time                `json:"createdAt"`
	ProductLocation         *ProductLocationResponse `json:"productLocation,omitempty"`
	TargetProductLocation   *ProductLocationResponse `json:"targetProductLocation,omitempty"`
	User                    *UserResponse            `json:"user,omitempty"`
}

// LedgerDiscrepancy contador cuyo saldo no coincide con la suma de su historial.
type LedgerDiscrepancy struct {
	ProductLocationID int64 `json:"productLocationId"`
	CurrentStock      int64 `json:"currentStock"`
	ReplayedStock     int64 `json:"replayedStock"`
}

// LedgerVerification resultado de POST /api/movements/verify.
type LedgerVerification struct {
	CheckedCounters  int                 `json:"checkedCounters"`
	CheckedMovements int                 `json:"checkedMovements"`
	Consistent       bool                `json:"consistent"`
	Discrepancies    []LedgerDiscrepancy `json:"discrepancies"`
}
