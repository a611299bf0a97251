package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/pkg/validator"
)

// ok responde {message, data} con el status indicado.
func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{Message: message, Data: data})
}

// fail responde el sobre de error estándar.
func fail(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	return c.Status(status).JSON(dto.ErrorEnvelope{
		Success: false,
		Error:   dto.ErrorResponse{Code: code, Message: message, Details: details},
	})
}

// writeError traduce errores de dominio a HTTP. Lo no reconocido es 500 y se registra.
func writeError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockError
	switch {
	case errors.As(err, &stockErr):
		return fail(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error(), map[string]string{
			"productLocationId": strconv.FormatInt(stockErr.ProductLocationID, 10),
			"available":         strconv.FormatInt(stockErr.Available, 10),
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fail(c, fiber.StatusBadRequest, "INVALID_QUANTITY", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidTransfer):
		return fail(c, fiber.StatusBadRequest, "INVALID_TRANSFER", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, reports.ErrExportUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", err.Error(), nil)
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals(LocalRequestID)).
		Msg("error interno")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Internal server error", nil)
}

// parseBody decodifica el JSON y valida los tags. Devuelve false si ya respondió 400.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body", nil)
	}
	if details := validator.ValidateStruct(out); details != nil {
		return false, fail(c, fiber.StatusBadRequest, "VALIDATION", "Validation failed", details)
	}
	return true, nil
}

// parseQuery igual que parseBody pero para query string.
func parseQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters", nil)
	}
	if details := validator.ValidateStruct(out); details != nil {
		return false, fail(c, fiber.StatusBadRequest, "VALIDATION", "Validation failed", details)
	}
	return true, nil
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, fail(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer", nil)
	}
	return id, true, nil
}

// ErrorHandler manejador global de Fiber: errores de ruta (404/405) y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		return fail(c, fe.Code, code, fe.Message, nil)
	}
	return writeError(c, err)
}
