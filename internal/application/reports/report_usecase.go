// Package reports contiene los casos de uso de reportes de inventario y sus exportaciones.
package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	appinv "github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ErrExportUnavailable el exportador no está configurado.
var ErrExportUnavailable = errors.New("export not available")

// ReportUseCase genera reportes de stock bajo, valor de inventario e historial.
//
// Fuente de datos: repositorios read-only; no escribe nada.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	plRepo     repository.ProductLocationRepository
	movRepo    repository.MovementRepository
	xlsx       SpreadsheetExporter
	pdf        PDFRenderer
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso. xlsx y pdf pueden ser nil si no se exporta.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	plRepo repository.ProductLocationRepository,
	movRepo repository.MovementRepository,
	xlsx SpreadsheetExporter,
	pdf PDFRenderer,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		plRepo:     plRepo,
		movRepo:    movRepo,
		xlsx:       xlsx,
		pdf:        pdf,
		now:        time.Now,
	}
}

// LowStock contadores con current_stock < minimum_stock.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.ProductLocationResponse, error) {
	list, err := uc.plRepo.List(ctx, repository.ProductLocationFilter{LowStock: true})
	if err != nil {
		return nil, fmt.Errorf("reporte stock bajo: %w", err)
	}
	out := make([]dto.ProductLocationResponse, 0, len(list))
	for _, pl := range list {
		out = append(out, *dto.FromProductLocation(pl))
	}
	return out, nil
}

// InventoryValue valor total del inventario y su desglose. Total es la suma del desglose por
// categoría (todo producto tiene categoría), así coincide siempre con ByCategory y ByLocation.
func (uc *ReportUseCase) InventoryValue(ctx context.Context) (*dto.InventoryValueResponse, error) {
	breakdown, err := uc.reportRepo.InventoryValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("valor de inventario: %w", err)
	}

	total := decimal.Zero
	res := &dto.InventoryValueResponse{
		ByCategory: make([]dto.CategoryValueDTO, 0, len(breakdown.ByCategory)),
		ByLocation: make([]dto.LocationValueDTO, 0, len(breakdown.ByLocation)),
	}
	for _, r := range breakdown.ByCategory {
		total = total.Add(r.Value)
		res.ByCategory = append(res.ByCategory, dto.CategoryValueDTO{
			CategoryID: r.CategoryID, CategoryName: r.CategoryName, Value: r.Value.Round(2),
		})
	}
	for _, r := range breakdown.ByLocation {
		res.ByLocation = append(res.ByLocation, dto.LocationValueDTO{
			LocationID: r.LocationID, LocationName: r.LocationName, Value: r.Value.Round(2),
		})
	}
	res.Total = total.Round(2)
	return res, nil
}

// Movements historial filtrado con paginación opcional (limit/offset).
func (uc *ReportUseCase) Movements(ctx context.Context, in dto.MovementFilter) ([]dto.MovementResponse, error) {
	filter, err := appinv.ToRepositoryFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte de movimientos: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *dto.FromMovement(m))
	}
	return out, nil
}

// ExportMovements historial filtrado como .xlsx.
func (uc *ReportUseCase) ExportMovements(ctx context.Context, in dto.MovementFilter) ([]byte, error) {
	if uc.xlsx == nil {
		return nil, ErrExportUnavailable
	}
	rows, err := uc.Movements(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.Movements(rows)
}

// ExportLowStock reporte de stock bajo como .xlsx.
func (uc *ReportUseCase) ExportLowStock(ctx context.Context) ([]byte, error) {
	if uc.xlsx == nil {
		return nil, ErrExportUnavailable
	}
	rows, err := uc.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.LowStock(rows)
}

// InventoryValuePDF valor de inventario como PDF.
func (uc *ReportUseCase) InventoryValuePDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, ErrExportUnavailable
	}
	report, err := uc.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.InventoryValue(report, uc.now())
}
