package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
	"github.com/jhoicas/control-inventario/internal/domain/inventory"
	"github.com/jhoicas/control-inventario/pkg/logger"
)

// MovementInputDTO datos del formulario de movimiento.
type MovementInputDTO struct {
	Code     string
	Type     entity.MovementType
	Quantity int
}

// MovementOutcome resultado de un movimiento aceptado.
// Persisted=false indica que el guardado falló; el estado en memoria ya incluye el movimiento.
type MovementOutcome struct {
	Transaction entity.Transaction
	Product     entity.Product
	Persisted   bool
}

// Controller dueño del estado de la sesión: productos, bitácora y la ranura del error actual.
// Aplica movimientos con el motor puro y guarda explícitamente después de cada movimiento aceptado.
type Controller struct {
	mu        sync.Mutex
	state     entity.InventoryState
	lastError string

	storage   StateStorage
	publisher MovementPublisher
	formatter inventory.DateFormatter
	now       func() time.Time
	log       *logger.Logger
}

// Option configura el Controller.
type Option func(*Controller)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithDateFormatter reemplaza el formato de fecha de la bitácora.
func WithDateFormatter(f inventory.DateFormatter) Option {
	return func(c *Controller) { c.formatter = f }
}

// WithPublisher registra un publicador de movimientos.
func WithPublisher(p MovementPublisher) Option {
	return func(c *Controller) { c.publisher = p }
}

// NewController construye el controlador con estado vacío; llamar Init para cargar el almacenamiento.
func NewController(storage StateStorage, log *logger.Logger, opts ...Option) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	c := &Controller{
		state:     entity.InventoryState{Products: []entity.Product{}, History: []entity.Transaction{}},
		storage:   storage,
		publisher: NopPublisher{},
		formatter: inventory.DisplayDateFormatter{},
		now:       time.Now,
		log:       log.Named("inventory"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init carga productos y bitácora desde el almacenamiento (con valores por defecto si faltan).
func (c *Controller) Init(ctx context.Context) {
	state := c.storage.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.lastError = ""
	c.log.Info().
		Int("products", len(state.Products)).
		Int("transactions", len(state.History)).
		Msg("estado de inventario cargado")
}

// SubmitMovement valida y aplica un movimiento.
//
// Limpia la ranura de error al inicio. Si el movimiento se rechaza (código inexistente, stock
// insuficiente, datos inválidos) guarda el mensaje en la ranura y no cambia el estado. Si se acepta,
// reemplaza la colección, antepone el registro a la bitácora, guarda y publica; los fallos de
// guardado o publicación no revierten el movimiento.
func (c *Controller) SubmitMovement(ctx context.Context, in MovementInputDTO) (*MovementOutcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastError = ""

	if err := inventory.ValidateMovement(in.Code, in.Type, in.Quantity); err != nil {
		return nil, c.reject(in, err)
	}

	res, err := inventory.ApplyMovement(c.state.Products, in.Code, in.Type, in.Quantity, c.formatter.Format(c.now()))
	if err != nil {
		return nil, c.reject(in, err)
	}

	c.state = entity.InventoryState{
		Products: res.Products,
		History:  inventory.PrependTransaction(c.state.History, res.Transaction),
	}

	outcome := &MovementOutcome{
		Transaction: res.Transaction,
		Product:     res.Products[entity.FindProduct(res.Products, in.Code)],
		Persisted:   true,
	}

	if err := c.storage.Save(ctx, c.state.Clone()); err != nil {
		outcome.Persisted = false
		c.log.Warn().Err(err).Str("code", in.Code).Msg("movimiento aplicado sin persistir")
	}
	if err := c.publisher.PublishMovement(ctx, res.Transaction); err != nil {
		c.log.Warn().Err(err).Str("code", in.Code).Msg("no se pudo publicar el movimiento")
	}

	c.log.Info().
		Str("code", res.Transaction.Code).
		Str("type", string(res.Transaction.Type)).
		Int("quantity", res.Transaction.Quantity).
		Int("balance", res.Transaction.ResultingBalance).
		Msg("movimiento registrado")

	return outcome, nil
}

func (c *Controller) reject(in MovementInputDTO, err error) error {
	c.lastError = domain.UserMessage(err)
	c.log.Debug().Err(err).Str("code", in.Code).Str("type", string(in.Type)).Int("quantity", in.Quantity).
		Msg("movimiento rechazado")
	return err
}

// RecordRejection registra en la ranura de error un intento rechazado antes de llegar al motor
// (ej. cuerpo HTTP inválido).
func (c *Controller) RecordRejection(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = domain.UserMessage(err)
}

// Products copia de la colección actual.
func (c *Controller) Products() []entity.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return entity.CloneProducts(c.state.Products)
}

// Product busca un producto por código exacto.
func (c *Controller) Product(code string) (entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := entity.FindProduct(c.state.Products, code)
	if idx == -1 {
		return entity.Product{}, &domain.ProductNotFoundError{Code: code}
	}
	return c.state.Products[idx], nil
}

// History copia de la bitácora (más reciente primero).
func (c *Controller) History() []entity.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return entity.CloneTransactions(c.state.History)
}

// State copia del estado completo.
func (c *Controller) State() entity.InventoryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// CurrentError mensaje del último intento rechazado; vacío si el último intento fue aceptado.
func (c *Controller) CurrentError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}
