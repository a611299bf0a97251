// Package pdf genera la versión imprimible del reporte de valor de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + app         │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL del inventario                                        │
//	│  TABLA: Categoría | Valor | %                                │
//	│  TABLA: Ubicación | Valor | %                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
)

var _ reports.PDFRenderer = (*MarotoRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoRenderer implementa reports.PDFRenderer usando Maroto v2.
type MarotoRenderer struct {
	appName string
}

// NewMarotoRenderer construye el generador; appName va en el encabezado y en los metadatos.
func NewMarotoRenderer(appName string) *MarotoRenderer {
	return &MarotoRenderer{appName: appName}
}

// InventoryValue genera el PDF y devuelve sus bytes.
func (g *MarotoRenderer) InventoryValue(report *dto.InventoryValueResponse, generatedAt time.Time) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valor de inventario", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalRow(report.Total))
	m.AddRows(line.NewRow(4))

	cats := make([]valueLine, 0, len(report.ByCategory))
	for _, c := range report.ByCategory {
		cats = append(cats, valueLine{label: c.CategoryName, value: c.Value})
	}
	m.AddRows(sectionRows("Por categoría", "Categoría", cats, report.Total)...)
	m.AddRows(line.NewRow(4))

	locs := make([]valueLine, 0, len(report.ByLocation))
	for _, l := range report.ByLocation {
		locs = append(locs, valueLine{label: l.LocationName, value: l.Value})
	}
	m.AddRows(sectionRows("Por ubicación", "Ubicación", locs, report.Total)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type valueLine struct {
	label string
	value decimal.Decimal
}

func headerRow(appName string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("VALOR DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3,
		})),
		col.New(6).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// sectionRows: título, cabecera con fondo azul y una fila por grupo con su participación.
func sectionRows(title, firstColumn string, lines []valueLine, total decimal.Decimal) []core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(strings.ToUpper(title), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}))),
		row.New(8).Add(
			h(firstColumn, 6, align.Left),
			h("Valor", 4, align.Right),
			h("%", 2, align.Right),
		).WithStyle(&props.Cell{BackgroundColor: colorPrimary}),
	}
	if len(lines) == 0 {
		return append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(l.label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New("$"+formatMoney(l.value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(share(l.value, total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// share porcentaje de v sobre total con un decimal. Con total 0 devuelve un guion largo.
func share(v, total decimal.Decimal) string {
	if total.IsZero() {
		return "—"
	}
	return v.Mul(decimal.NewFromInt(100)).Div(total).StringFixed(1) + "%"
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
