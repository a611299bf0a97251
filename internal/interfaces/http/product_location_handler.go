package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
)

// ProductLocationHandler contadores de stock. El saldo sólo cambia vía /api/movements.
type ProductLocationHandler struct {
	uc *usecase.ProductLocationUseCase
}

// NewProductLocationHandler construye el handler.
func NewProductLocationHandler(uc *usecase.ProductLocationUseCase) *ProductLocationHandler {
	return &ProductLocationHandler{uc: uc}
}

// List godoc
// @Summary      Listar contadores de stock
// @Tags         product-locations
// @Security     Bearer
// @Produce      json
// @Param        productId   query  int   false  "Producto"
// @Param        locationId  query  int   false  "Ubicación"
// @Param        lowStock    query  bool  false  "Sólo bajo el mínimo"
// @Success      200         {object}  dto.Envelope
// @Router       /api/product-locations [get]
func (h *ProductLocationHandler) List(c *fiber.Ctx) error {
	var in dto.ProductLocationFilter
	if valid, err := parseQuery(c, &in); !valid {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Product locations retrieved successfully", out)
}

// GetByID godoc
// @Summary      Obtener contador
// @Tags         product-locations
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorEnvelope
// @Router       /api/product-locations/{id} [get]
func (h *ProductLocationHandler) GetByID(c *fiber.Ctx) error {
	id, valid, err := paramID(c)
	if !valid {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Product location retrieved successfully", out)
}

// Create godoc
// @Summary      Crear contador con stock 0
// @Tags         product-locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductLocationRequest  true  "productId, locationId, minimumStock"
// @Success      201   {object}  dto.Envelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/product-locations [post]
func (h *ProductLocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductLocationRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Product location created successfully", out)
}

// Update godoc
// @Summary      Cambiar stock mínimo
// @Description  currentStock no es editable; se modifica registrando movimientos.
// @Tags         product-locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                               true  "ID"
// @Param        body  body  dto.UpdateProductLocationRequest  true  "minimumStock"
// @Success      200   {object}  dto.Envelope
// @Router       /api/product-locations/{id} [put]
func (h *ProductLocationHandler) Update(c *fiber.Ctx) error {
	id, valid, err := paramID(c)
	if !valid {
		return err
	}
	var in dto.UpdateProductLocationRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	out, err := h.uc.UpdateMinimumStock(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Product location updated successfully", out)
}

// Delete godoc
// @Summary      Eliminar contador
// @Description  Sólo con stock 0 y sin movimientos.
// @Tags         product-locations
// @Security     Bearer
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.ErrorEnvelope
// @Router       /api/product-locations/{id} [delete]
func (h *ProductLocationHandler) Delete(c *fiber.Ctx) error {
	id, valid, err := paramID(c)
	if !valid {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return ok(c, fiber.StatusOK, "Product location deleted successfully", nil)
}
