package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-inventario/internal/application/dto"
	"github.com/jhoicas/control-inventario/internal/application/inventory"
	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
)

// InventoryHandler maneja productos, movimientos, bitácora y la ranura de error.
type InventoryHandler struct {
	uc       *inventory.Controller
	validate *validator.Validate
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.Controller) *InventoryHandler {
	return &InventoryHandler{uc: uc, validate: validator.New()}
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	products := h.uc.Products()
	return c.JSON(dto.ProductListResponse{Total: len(products), Products: products})
}

// GetProduct godoc
// @Summary      Obtener producto por código
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código exacto (sensible a mayúsculas)"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.Product(c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(p)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento (Entrada / Salida)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "code, type (Entrada|Salida), quantity > 0"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.MovementErrorResponse
// @Failure      404   {object}  dto.MovementErrorResponse
// @Failure      409   {object}  dto.MovementErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		h.uc.RecordRejection(fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	if err := h.validate.Struct(in); err != nil {
		details := describeValidation(err)
		verr := fmt.Errorf("%w: %s", domain.ErrInvalidInput, details)
		h.uc.RecordRejection(verr)
		return c.Status(fiber.StatusBadRequest).JSON(dto.MovementErrorResponse{
			ErrorResponse: dto.ErrorResponse{Code: "VALIDATION", Message: domain.UserMessage(verr) + " (" + details + ")"},
			Input:         in,
		})
	}

	typ, _ := entity.ParseMovementType(in.Type) // oneof ya lo garantiza
	out, err := h.uc.SubmitMovement(c.UserContext(), inventory.MovementInputDTO{
		Code:     in.Code,
		Type:     typ,
		Quantity: in.Quantity,
	})
	if err != nil {
		status, code := movementErrorStatus(err)
		return c.Status(status).JSON(dto.MovementErrorResponse{
			ErrorResponse: dto.ErrorResponse{Code: code, Message: domain.UserMessage(err)},
			Input:         in,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		Transaction: out.Transaction,
		Product:     out.Product,
		Persisted:   out.Persisted,
	})
}

// ListMovements godoc
// @Summary      Bitácora de movimientos (más reciente primero)
// @Tags         movements
// @Produce      json
// @Success      200  {object}  dto.HistoryResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	history := h.uc.History()
	return c.JSON(dto.HistoryResponse{Total: len(history), History: history})
}

// CurrentError godoc
// @Summary      Error del último intento de movimiento
// @Tags         movements
// @Produce      json
// @Success      200  {object}  dto.CurrentErrorResponse
// @Router       /api/error [get]
func (h *InventoryHandler) CurrentError(c *fiber.Ctx) error {
	var resp dto.CurrentErrorResponse
	if msg := h.uc.CurrentError(); msg != "" {
		resp.Error = &msg
	}
	return c.JSON(resp)
}

func movementErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// describeValidation resume los campos que fallaron (ej. "quantity:gt, type:oneof").
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+":"+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
