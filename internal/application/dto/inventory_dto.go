package dto

import "github.com/jhoicas/control-inventario/internal/domain/entity"

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	Code     string `json:"code" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=Entrada Salida"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// MovementResponse respuesta de un movimiento aceptado.
// Persisted=false indica que el movimiento quedó solo en memoria (fallo de almacenamiento).
type MovementResponse struct {
	Transaction entity.Transaction `json:"transaction"`
	Product     entity.Product     `json:"product"`
	Persisted   bool               `json:"persisted"`
}

// MovementErrorResponse error de un movimiento rechazado; devuelve lo enviado para que el
// formulario pueda restaurar los campos.
type MovementErrorResponse struct {
	ErrorResponse
	Input RegisterMovementRequest `json:"input"`
}

// ProductListResponse listado de productos con su total.
type ProductListResponse struct {
	Total    int              `json:"total"`
	Products []entity.Product `json:"products"`
}

// HistoryResponse bitácora de movimientos (más reciente primero).
type HistoryResponse struct {
	Total   int                  `json:"total"`
	History []entity.Transaction `json:"history"`
}

// CurrentErrorResponse ranura del error actual del formulario; null si no hay error.
type CurrentErrorResponse struct {
	Error *string `json:"error"`
}
