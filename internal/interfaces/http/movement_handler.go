package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

// MovementHandler registro y consulta del historial de movimientos.
type MovementHandler struct {
	apply *inventory.ApplyMovementUseCase
	query *inventory.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *inventory.ApplyMovementUseCase, query *inventory.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{apply: apply, query: query}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  ENTRY, EXIT, ADJUSTMENT o TRANSFER. Ningún contador puede quedar en negativo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      404   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	out, err := h.apply.ApplyFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Movement created successfully", out)
}

// List godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type               query  string  false  "ENTRY|EXIT|ADJUSTMENT|TRANSFER"
// @Param        productLocationId  query  int     false  "Contador (origen o destino)"
// @Param        fromDate           query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        toDate             query  string  false  "YYYY-MM-DD o RFC3339"
// @Success      200                {object}  dto.Envelope
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementFilter
	if valid, err := parseQuery(c, &in); !valid {
		return err
	}
	out, err := h.query.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Movements retrieved successfully", out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorEnvelope
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, valid, err := paramID(c)
	if !valid {
		return err
	}
	out, err := h.query.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Movement retrieved successfully", out)
}

// Verify godoc
// @Summary      Verificar saldos contra el historial
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/movements/verify [post]
func (h *MovementHandler) Verify(c *fiber.Ctx) error {
	out, err := h.query.Verify(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	msg := "Ledger is consistent"
	if !out.Consistent {
		msg = "Ledger has discrepancies"
	}
	return ok(c, fiber.StatusOK, msg, out)
}
