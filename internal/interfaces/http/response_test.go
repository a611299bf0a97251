package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/reports"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

func errorBody(t *testing.T, app *fiber.App, path string) (int, dto.ErrorEnvelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env dto.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&domain.StockError{ProductLocationID: 3, Available: 2, Delta: -5}, 409, "INSUFFICIENT_STOCK"},
		{fmt.Errorf("tx: %w", domain.ErrInsufficientStock), 409, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidQuantity, 400, "INVALID_QUANTITY"},
		{domain.ErrInvalidTransfer, 400, "INVALID_TRANSFER"},
		{fmt.Errorf("%w: fromDate", domain.ErrInvalidInput), 400, "INVALID_INPUT"},
		{domain.ErrNotFound, 404, "NOT_FOUND"},
		{domain.ErrUserNotFound, 404, "NOT_FOUND"},
		{domain.ErrDuplicate, 409, "DUPLICATE"},
		{domain.ErrEmailAlreadyExists, 409, "DUPLICATE"},
		{domain.ErrConflict, 409, "CONFLICT"},
		{domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{domain.ErrForbidden, 403, "FORBIDDEN"},
		{reports.ErrExportUnavailable, 503, "EXPORT_UNAVAILABLE"},
		{errors.New("connection reset"), 500, "INTERNAL"},
	}
	for i, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return writeError(c, err) })

		status, env := errorBody(t, app, "/")
		assert.Equal(t, tc.status, status, "caso %d", i)
		assert.False(t, env.Success)
		assert.Equal(t, tc.code, env.Error.Code, "caso %d", i)
	}
}

func TestWriteError_MensajesQueLaConsolaReconoce(t *testing.T) {
	app := fiber.New()
	app.Get("/exit", func(c *fiber.Ctx) error {
		return writeError(c, &domain.StockError{ProductLocationID: 1, Available: 2, Delta: -5})
	})
	app.Get("/adj", func(c *fiber.Ctx) error {
		return writeError(c, &domain.StockError{ProductLocationID: 1, Available: 10, Delta: -11, Adjustment: true})
	})
	app.Get("/self", func(c *fiber.Ctx) error { return writeError(c, domain.ErrInvalidTransfer) })

	_, env := errorBody(t, app, "/exit")
	assert.Contains(t, env.Error.Message, "Insufficient stock")
	assert.Equal(t, "2", env.Error.Details["available"])

	_, env = errorBody(t, app, "/adj")
	assert.Contains(t, env.Error.Message, "negative stock")

	_, env = errorBody(t, app, "/self")
	assert.Contains(t, env.Error.Message, "Source and target")
}

func TestWriteError_NoFiltraDetallesInternos(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, errors.New("pq: password authentication failed")) })

	_, env := errorBody(t, app, "/")
	assert.NotContains(t, env.Error.Message, "password")
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		id, valid, err := paramID(c)
		if !valid {
			return err
		}
		return c.JSON(fiber.Map{"id": id})
	})

	status, env := errorBody(t, app, "/abc")
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_ID", env.Error.Code)

	status, _ = errorBody(t, app, "/0")
	assert.Equal(t, 400, status)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/15", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/x", func(c *fiber.Ctx) error { return nil })

	status, env := errorBody(t, app, "/nope")
	assert.Equal(t, 404, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
