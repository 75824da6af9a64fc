package inventory_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
	"github.com/jhoicas/control-inventario/internal/domain/inventory"
)

const testDate = "1/1/2024 10:00:00"

// Escenario 1: entrada de 50 sobre SP000271 (427) → 477.
func TestApplyMovement_EntradaSumaAlTotal(t *testing.T) {
	products := entity.InitialProducts()

	res, err := inventory.ApplyMovement(products, "SP000271", entity.MovementEntrada, 50, testDate)
	require.NoError(t, err)

	idx := entity.FindProduct(res.Products, "SP000271")
	require.NotEqual(t, -1, idx)
	assert.Equal(t, 477, res.Products[idx].Total)

	assert.Equal(t, entity.Transaction{
		Date:             testDate,
		Code:             "SP000271",
		Description:      "Maní Tostado Entero Engomado",
		Type:             entity.MovementEntrada,
		Quantity:         50,
		ResultingBalance: 477,
	}, res.Transaction)
}

func TestApplyMovement_SalidaRestaDelTotal(t *testing.T) {
	products := entity.InitialProducts()

	res, err := inventory.ApplyMovement(products, "SP000270", entity.MovementSalida, 86, testDate)
	require.NoError(t, err)

	idx := entity.FindProduct(res.Products, "SP000270")
	assert.Equal(t, 0, res.Products[idx].Total, "la salida exacta deja el total en cero")
	assert.Equal(t, 0, res.Transaction.ResultingBalance)
	assert.Equal(t, entity.MovementSalida, res.Transaction.Type)
}

// Escenario 2: salida de 500 sobre SP000271 (427) → stock insuficiente, sin cambios.
func TestApplyMovement_SalidaMayorAlStock(t *testing.T) {
	products := entity.InitialProducts()
	before := entity.CloneProducts(products)

	res, err := inventory.ApplyMovement(products, "SP000271", entity.MovementSalida, 500, testDate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 427, stockErr.Available)
	assert.Equal(t, 500, stockErr.Requested)
	assert.Equal(t, "No hay stock suficiente para la salida. Stock actual: 427.", err.Error())

	assert.Nil(t, res.Products)
	assert.Equal(t, entity.Transaction{}, res.Transaction)
	assert.Equal(t, before, products, "la colección de entrada no debe cambiar")
}

// Escenario 3: código inexistente → producto no encontrado.
func TestApplyMovement_CodigoInexistente(t *testing.T) {
	products := entity.InitialProducts()
	before := entity.CloneProducts(products)

	_, err := inventory.ApplyMovement(products, "ZZZZZZZ", entity.MovementEntrada, 1, testDate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Producto con código ZZZZZZZ no encontrado.", err.Error())
	assert.Equal(t, before, products)
}

func TestApplyMovement_CodigoDistingueMayusculas(t *testing.T) {
	_, err := inventory.ApplyMovement(entity.InitialProducts(), "sp000271", entity.MovementEntrada, 1, testDate)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestApplyMovement_NoModificaOtrosProductos(t *testing.T) {
	products := entity.InitialProducts()

	res, err := inventory.ApplyMovement(products, "SP000024", entity.MovementEntrada, 7, testDate)
	require.NoError(t, err)
	require.Len(t, res.Products, len(products))

	for i := range products {
		if products[i].Code == "SP000024" {
			assert.Equal(t, 0, products[i].Total, "la entrada original queda intacta")
			assert.Equal(t, 7, res.Products[i].Total)
			continue
		}
		assert.Equal(t, products[i], res.Products[i], "mismo orden y valores para el resto")
	}
}

// Una entrada que desborda int se rechaza sin tocar la colección.
func TestApplyMovement_EntradaQueDesbordaElTotal(t *testing.T) {
	products := entity.InitialProducts()
	before := entity.CloneProducts(products)

	res, err := inventory.ApplyMovement(products, "SP000271", entity.MovementEntrada, math.MaxInt, testDate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, res.Products)
	assert.Equal(t, before, products)

	// El máximo exacto sí cabe.
	res, err = inventory.ApplyMovement(products, "SP000271", entity.MovementEntrada, math.MaxInt-427, testDate)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, res.Transaction.ResultingBalance)
}

func TestApplyMovement_CantidadOTipoInvalido(t *testing.T) {
	products := entity.InitialProducts()

	cases := []struct {
		name     string
		typ      entity.MovementType
		quantity int
	}{
		{"cantidad cero", entity.MovementEntrada, 0},
		{"cantidad negativa", entity.MovementEntrada, -5},
		{"tipo desconocido", entity.MovementType("Ajuste"), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.ApplyMovement(products, "SP000271", tc.typ, tc.quantity, testDate)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// Propiedad: para cualquier producto y cantidad, el saldo del registro coincide con el total nuevo.
func TestApplyMovement_SaldoCoincideConTotal(t *testing.T) {
	for _, p := range entity.InitialProducts() {
		for _, q := range []int{1, 2, 13, 100} {
			res, err := inventory.ApplyMovement(entity.InitialProducts(), p.Code, entity.MovementEntrada, q, testDate)
			require.NoError(t, err)
			idx := entity.FindProduct(res.Products, p.Code)
			assert.Equal(t, p.Total+q, res.Products[idx].Total)
			assert.Equal(t, res.Products[idx].Total, res.Transaction.ResultingBalance)

			res, err = inventory.ApplyMovement(entity.InitialProducts(), p.Code, entity.MovementSalida, q, testDate)
			if q > p.Total {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, p.Total-q, res.Transaction.ResultingBalance)
		}
	}
}

func TestPrependTransaction_MasRecientePrimero(t *testing.T) {
	first := entity.Transaction{Code: "A", Quantity: 1}
	second := entity.Transaction{Code: "B", Quantity: 2}

	history := inventory.PrependTransaction(nil, first)
	history = inventory.PrependTransaction(history, second)

	require.Len(t, history, 2)
	assert.Equal(t, "B", history[0].Code)
	assert.Equal(t, "A", history[1].Code)
}

func TestValidateMovement(t *testing.T) {
	assert.NoError(t, inventory.ValidateMovement("SP000026", entity.MovementEntrada, 1))
	assert.ErrorIs(t, inventory.ValidateMovement("  ", entity.MovementEntrada, 1), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateMovement("SP000026", "entrada", 1), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateMovement("SP000026", entity.MovementSalida, 0), domain.ErrInvalidInput)
}

func TestFormatDate(t *testing.T) {
	at := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "1/1/2024 10:00:00", inventory.FormatDate(at))

	at = time.Date(2025, time.December, 24, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "24/12/2025 9:05:07", inventory.FormatDate(at))
}

func TestDisplayDateFormatter_UsaZonaConfigurada(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	f := inventory.DisplayDateFormatter{Loc: loc}

	at := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "1/1/2024 10:00:00", f.Format(at))
}
