package reports

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// SpreadsheetExporter genera hojas de cálculo (.xlsx) a partir de los reportes.
type SpreadsheetExporter interface {
	Movements(rows []dto.MovementResponse) ([]byte, error)
	LowStock(rows []dto.ProductLocationResponse) ([]byte, error)
}

// PDFRenderer genera la versión imprimible del valor de inventario.
type PDFRenderer interface {
	InventoryValue(report *dto.InventoryValueResponse, generatedAt time.Time) ([]byte, error)
}
