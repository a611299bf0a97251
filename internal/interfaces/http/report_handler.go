package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler reportes de stock bajo, valor de inventario e historial, y sus exportaciones.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Contadores bajo el stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Low stock report generated successfully", out)
}

// InventoryValue godoc
// @Summary      Valor del inventario (total, por categoría y por ubicación)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	out, err := h.uc.InventoryValue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Inventory value report generated successfully", out)
}

// Movements godoc
// @Summary      Reporte de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        productId   query  int     false  "Producto"
// @Param        locationId  query  int     false  "Ubicación"
// @Param        type        query  string  false  "Tipo"
// @Param        fromDate    query  string  false  "Desde"
// @Param        toDate      query  string  false  "Hasta"
// @Param        limit       query  int     false  "Límite"
// @Param        offset      query  int     false  "Offset"
// @Success      200         {object}  dto.Envelope
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	var in dto.MovementFilter
	if valid, err := parseQuery(c, &in); !valid {
		return err
	}
	out, err := h.uc.Movements(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Movements report generated successfully", out)
}

// ExportMovements GET /api/reports/movements/export: mismos filtros, en .xlsx.
func (h *ReportHandler) ExportMovements(c *fiber.Ctx) error {
	var in dto.MovementFilter
	if valid, err := parseQuery(c, &in); !valid {
		return err
	}
	data, err := h.uc.ExportMovements(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, mimeXLSX, "movements", "xlsx", data)
}

// ExportLowStock GET /api/reports/low-stock/export.
func (h *ReportHandler) ExportLowStock(c *fiber.Ctx) error {
	data, err := h.uc.ExportLowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, mimeXLSX, "low-stock", "xlsx", data)
}

// InventoryValuePDF GET /api/reports/inventory-value/pdf.
func (h *ReportHandler) InventoryValuePDF(c *fiber.Ctx) error {
	data, err := h.uc.InventoryValuePDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, mimePDF, "inventory-value", "pdf", data)
}

func sendFile(c *fiber.Ctx, contentType, name, ext string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_%s.%s"`, name, time.Now().Format("20060102_150405"), ext))
	return c.Status(fiber.StatusOK).Send(data)
}
