package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNothingToExport   = errors.New("no hay movimientos para generar un reporte")
	ErrPersistenceRead   = errors.New("lectura del almacenamiento")
	ErrPersistenceWrite  = errors.New("escritura del almacenamiento")
)

// ProductNotFoundError indica que el código no existe en la colección de productos.
// Cumple errors.Is(err, ErrProductNotFound) y errors.Is(err, ErrNotFound).
type ProductNotFoundError struct {
	Code string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Producto con código %s no encontrado.", e.Code)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound || target == ErrNotFound
}

// InsufficientStockError indica una salida mayor que el stock actual del producto.
type InsufficientStockError struct {
	Code      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("No hay stock suficiente para la salida. Stock actual: %d.", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// UserMessage devuelve el texto que se muestra en la ranura de error del formulario.
// Para errores no tipados devuelve err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var nf *ProductNotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var is *InsufficientStockError
	if errors.As(err, &is) {
		return is.Error()
	}
	if errors.Is(err, ErrInvalidInput) {
		return "Datos del movimiento inválidos."
	}
	return err.Error()
}
