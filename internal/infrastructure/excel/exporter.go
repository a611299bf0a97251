package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
)

var _ reports.SpreadsheetExporter = (*Exporter)(nil)

const dateLayout = "2006-01-02 15:04:05"

// Exporter genera los reportes en .xlsx con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Movements una fila por movimiento, en el orden recibido (más reciente primero).
func (e *Exporter) Movements(rows []dto.MovementResponse) ([]byte, error) {
	header := []interface{}{
		"ID", "Fecha", "Tipo", "Cantidad",
		"Contador", "SKU", "Producto", "Ubicación",
		"Contador destino", "Ubicación destino",
		"Usuario", "Notas",
	}
	data := make([][]interface{}, 0, len(rows))
	for _, m := range rows {
		var (
			sku, product, location string
			target                 interface{}
			targetLocation         string
			user                   string
		)
		if pl := m.ProductLocation; pl != nil {
			if pl.Product != nil {
				sku, product = pl.Product.SKU, pl.Product.Name
			}
			if pl.Location != nil {
				location = pl.Location.Name
			}
		}
		if m.TargetProductLocationID != nil {
			target = *m.TargetProductLocationID
		}
		if t := m.TargetProductLocation; t != nil && t.Location != nil {
			targetLocation = t.Location.Name
		}
		if m.User != nil {
			user = m.User.Name
		}
		data = append(data, []interface{}{
			m.ID, m.CreatedAt.Format(dateLayout), m.Type, m.Quantity,
			m.ProductLocationID, sku, product, location,
			target, targetLocation,
			user, m.Notes,
		})
	}
	return writeSheet("Movimientos", header, data)
}

// LowStock una fila por contador bajo el mínimo, con el faltante.
func (e *Exporter) LowStock(rows []dto.ProductLocationResponse) ([]byte, error) {
	header := []interface{}{"Contador", "SKU", "Producto", "Ubicación", "Stock actual", "Stock mínimo", "Faltante"}
	data := make([][]interface{}, 0, len(rows))
	for _, pl := range rows {
		var sku, product, location string
		if pl.Product != nil {
			sku, product = pl.Product.SKU, pl.Product.Name
		}
		if pl.Location != nil {
			location = pl.Location.Name
		}
		data = append(data, []interface{}{
			pl.ID, sku, product, location, pl.CurrentStock, pl.MinimumStock, pl.MinimumStock - pl.CurrentStock,
		})
	}
	return writeSheet("Stock bajo", header, data)
}

func writeSheet(name string, header []interface{}, data [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, name); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, fmt.Errorf("excel: columnas: %w", err)
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
	}

	for i, values := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		row := values
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("excel: panes: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
