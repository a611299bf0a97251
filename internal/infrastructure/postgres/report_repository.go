package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para la valorización del inventario.
// Valor de un contador = current_stock × price del producto.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventoryValue desglosa el valor por categoría y por ubicación en una sola sentencia, así los
// dos desgloses suman lo mismo aunque haya movimientos en curso. Categorías y ubicaciones sin
// stock aparecen con 0.
func (r *ReportRepo) InventoryValue(ctx context.Context) (*repository.InventoryValueBreakdown, error) {
	const query = `
	WITH v AS (
	    SELECT p.category_id, pl.location_id, pl.current_stock * p.price AS value
	    FROM product_locations pl
	    JOIN products p ON p.id = pl.product_id
	)
	SELECT 'C' AS kind, c.id, c.name, COALESCE(SUM(v.value), 0) AS value
	FROM categories c
	LEFT JOIN v ON v.category_id = c.id
	GROUP BY c.id, c.name
	UNION ALL
	SELECT 'L' AS kind, l.id, l.name, COALESCE(SUM(v.value), 0) AS value
	FROM locations l
	LEFT JOIN v ON v.location_id = l.id
	GROUP BY l.id, l.name
	ORDER BY kind, value DESC, name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("report.InventoryValue: %w", err)
	}
	defer rows.Close()

	out := &repository.InventoryValueBreakdown{}
	for rows.Next() {
		var (
			kind  string
			id    int64
			name  string
			value decimal.Decimal
		)
		if err := rows.Scan(&kind, &id, &name, &value); err != nil {
			return nil, fmt.Errorf("report.InventoryValue scan: %w", err)
		}
		if kind == "C" {
			out.ByCategory = append(out.ByCategory, repository.ValueByCategory{CategoryID: id, CategoryName: name, Value: value})
		} else {
			out.ByLocation = append(out.ByLocation, repository.ValueByLocation{LocationID: id, LocationName: name, Value: value})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report.InventoryValue rows: %w", err)
	}
	return out, nil
}
