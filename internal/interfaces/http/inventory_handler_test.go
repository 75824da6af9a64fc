package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-inventario/internal/application/dto"
	appinventory "github.com/jhoicas/control-inventario/internal/application/inventory"
	"github.com/jhoicas/control-inventario/internal/application/report"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
	"github.com/jhoicas/control-inventario/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/control-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/control-inventario/internal/infrastructure/persistence"
	apphttp "github.com/jhoicas/control-inventario/internal/interfaces/http"
	"github.com/jhoicas/control-inventario/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app        *fiber.App
	controller *appinventory.Controller
	storage    *persistence.StateStorage
	logs       *bytes.Buffer
}

// buildTestApp arma la API completa sobre el backend en memoria con reloj fijo.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	storage := persistence.NewStateStorage(filestore.NewInMemory(), log)
	controller := appinventory.NewController(storage, log, appinventory.WithClock(func() time.Time {
		return time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	}))
	controller.Init(context.Background())

	csv, err := report.NewCSVExporter("")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestID())
	app.Use(apphttp.AccessLog(log))
	apphttp.Router(app, apphttp.RouterDeps{
		Controller: controller,
		CSV:        csv,
		PDF:        report.NewPDFUseCase(infrapdf.NewMarotoReportGenerator("Control de Inventario", "Pruebas")),
	})

	return &testEnv{app: app, controller: controller, storage: storage, logs: &buf}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_DevuelveSemilla(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.ProductListResponse](t, resp)
	assert.Equal(t, 7, body.Total)
	assert.Equal(t, "SP000026", body.Products[0].Code)
}

func TestGetProduct_Existente(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodGet, "/api/products/SP000271", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	p := decode[entity.Product](t, resp)
	assert.Equal(t, "SP000271", p.Code)
	assert.Equal(t, 427, p.Total)
}

func TestGetProduct_CodigoSensibleAMayusculas(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodGet, "/api/products/sp000271", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaAceptada(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPost, "/api/movements", `{"code":"SP000271","type":"Entrada","quantity":50}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode[dto.MovementResponse](t, resp)
	assert.True(t, body.Persisted)
	assert.Equal(t, 477, body.Product.Total)
	assert.Equal(t, 477, body.Transaction.ResultingBalance)
	assert.Equal(t, "1/1/2024 10:00:00", body.Transaction.Date)

	// El estado persistido incluye el movimiento.
	assert.Len(t, env.storage.Load(context.Background()).History, 1)
}

func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	env := buildTestApp(t)
	before := env.controller.State()

	resp := env.do(t, http.MethodPost, "/api/movements", `{"code":"SP000271","type":"Salida","quantity":500}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body := decode[dto.MovementErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "No hay stock suficiente para la salida. Stock actual: 427.", body.Message)
	assert.Equal(t, dto.RegisterMovementRequest{Code: "SP000271", Type: "Salida", Quantity: 500}, body.Input)
	assert.Equal(t, before, env.controller.State())
}

func TestRegisterMovement_CodigoInexistente(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPost, "/api/movements", `{"code":"ZZZZZZZ","type":"Entrada","quantity":1}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decode[dto.MovementErrorResponse](t, resp)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Code)
	assert.Equal(t, "Producto con código ZZZZZZZ no encontrado.", body.Message)
	assert.Empty(t, env.controller.History())
}

func TestRegisterMovement_Validacion(t *testing.T) {
	cases := map[string]string{
		"cantidad cero":     `{"code":"SP000026","type":"Entrada","quantity":0}`,
		"cantidad negativa": `{"code":"SP000026","type":"Entrada","quantity":-3}`,
		"tipo desconocido":  `{"code":"SP000026","type":"Ajuste","quantity":3}`,
		"sin código":        `{"type":"Entrada","quantity":3}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			env := buildTestApp(t)

			resp := env.do(t, http.MethodPost, "/api/movements", payload)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body := decode[dto.MovementErrorResponse](t, resp)
			assert.Equal(t, "VALIDATION", body.Code)
			assert.Contains(t, body.Message, "Datos del movimiento inválidos.")
			assert.Equal(t, "Datos del movimiento inválidos.", env.controller.CurrentError())
			assert.Empty(t, env.controller.History())
		})
	}
}

func TestRegisterMovement_EntradaQueDesbordaElTotal(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPost, "/api/movements", `{"code":"SP000271","type":"Entrada","quantity":9223372036854775807}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.MovementErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Empty(t, env.controller.History())

	p := decode[entity.Product](t, env.do(t, http.MethodGet, "/api/products/SP000271", ""))
	assert.Equal(t, 427, p.Total)
	assert.Empty(t, env.storage.Load(context.Background()).History)
}

func TestRegisterMovement_CuerpoInvalido(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodPost, "/api/movements", `{"code":`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

func TestListMovements_MasRecientePrimero(t *testing.T) {
	env := buildTestApp(t)

	require.Equal(t, fiber.StatusCreated,
		env.do(t, http.MethodPost, "/api/movements", `{"code":"SP000026","type":"Entrada","quantity":10}`).StatusCode)
	require.Equal(t, fiber.StatusCreated,
		env.do(t, http.MethodPost, "/api/movements", `{"code":"SP000026","type":"Salida","quantity":4}`).StatusCode)

	resp := env.do(t, http.MethodGet, "/api/movements", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.HistoryResponse](t, resp)
	require.Equal(t, 2, body.Total)
	assert.Equal(t, entity.MovementSalida, body.History[0].Type)
	assert.Equal(t, 6, body.History[0].ResultingBalance)
}

func TestCurrentError_SeLimpiaConMovimientoAceptado(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodGet, "/api/error", "")
	assert.Nil(t, decode[dto.CurrentErrorResponse](t, resp).Error)

	env.do(t, http.MethodPost, "/api/movements", `{"code":"ZZZZZZZ","type":"Entrada","quantity":1}`)
	current := decode[dto.CurrentErrorResponse](t, env.do(t, http.MethodGet, "/api/error", ""))
	require.NotNil(t, current.Error)
	assert.Equal(t, "Producto con código ZZZZZZZ no encontrado.", *current.Error)

	env.do(t, http.MethodPost, "/api/movements", `{"code":"SP000026","type":"Entrada","quantity":1}`)
	current = decode[dto.CurrentErrorResponse](t, env.do(t, http.MethodGet, "/api/error", ""))
	assert.Nil(t, current.Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestID_GeneraYRespeta(t *testing.T) {
	env := buildTestApp(t)

	resp := env.do(t, http.MethodGet, "/api/products", "")
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestAccessLog_RegistraPeticion(t *testing.T) {
	env := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/movements", nil)
	req.Header.Set(apphttp.HeaderRequestID, "req-log")
	_, err := env.app.Test(req, -1)
	require.NoError(t, err)

	logs := env.logs.String()
	assert.Contains(t, logs, `"path":"/api/movements"`)
	assert.Contains(t, logs, `"status":200`)
	assert.Contains(t, logs, `"request_id":"req-log"`)
}
