package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
)

// MovementResult resultado de aplicar un movimiento: la colección nueva y el registro de auditoría.
type MovementResult struct {
	Products    []entity.Product
	Transaction entity.Transaction
}

// ValidateMovement valida los datos de entrada antes de llamar al motor.
func ValidateMovement(code string, typ entity.MovementType, quantity int) error {
	if strings.TrimSpace(code) == "" || !typ.Valid() || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyMovement aplica una entrada o salida sobre la colección de productos (servicio de dominio puro).
//
// La colección de entrada no se modifica: se devuelve una copia donde solo cambia el total del
// producto afectado, en el mismo orden. Si hay error no se produce ni colección ni registro.
//
//	Entrada: NuevoTotal = Total + Cantidad  (rechazada si desborda int)
//	Salida:  NuevoTotal = Total - Cantidad  (rechazada si Total < Cantidad)
func ApplyMovement(products []entity.Product, code string, typ entity.MovementType, quantity int, date string) (MovementResult, error) {
	if !typ.Valid() || quantity <= 0 {
		return MovementResult{}, domain.ErrInvalidInput
	}

	idx := entity.FindProduct(products, code)
	if idx == -1 {
		return MovementResult{}, &domain.ProductNotFoundError{Code: code}
	}
	product := products[idx]

	newTotal := product.Total
	switch typ {
	case entity.MovementEntrada:
		if quantity > math.MaxInt-product.Total {
			return MovementResult{}, fmt.Errorf("%w: la entrada desborda el total de %s", domain.ErrInvalidInput, product.Code)
		}
		newTotal += quantity
	case entity.MovementSalida:
		if product.Total < quantity {
			return MovementResult{}, &domain.InsufficientStockError{
				Code:      product.Code,
				Available: product.Total,
				Requested: quantity,
			}
		}
		newTotal -= quantity
	}

	updated := entity.CloneProducts(products)
	updated[idx].Total = newTotal

	return MovementResult{
		Products: updated,
		Transaction: entity.Transaction{
			Date:             date,
			Code:             product.Code,
			Description:      product.Description,
			Type:             typ,
			Quantity:         quantity,
			ResultingBalance: newTotal,
		},
	}, nil
}

// PrependTransaction devuelve una bitácora nueva con tx al inicio (más reciente primero).
func PrependTransaction(history []entity.Transaction, tx entity.Transaction) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(history)+1)
	out = append(out, tx)
	return append(out, history...)
}
