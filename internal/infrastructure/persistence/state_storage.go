// Package persistence implementa el adaptador de almacenamiento del inventario: lee y escribe los
// dos registros (productos y bitácora) sobre cualquier repository.KeyValueStore.
//
// La lectura nunca falla hacia el llamador: un registro ausente, corrupto o con forma inesperada se
// reemplaza por su valor por defecto y el problema solo se reporta en el log.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/control-inventario/internal/domain"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
	"github.com/jhoicas/control-inventario/internal/domain/repository"
	"github.com/jhoicas/control-inventario/pkg/logger"
)

// Claves de los registros, sin prefijo.
const (
	KeyProducts = "inventory_products"
	KeyHistory  = "inventory_history"
)

// StateStorage adaptador Load/Save del estado del inventario.
type StateStorage struct {
	store       repository.KeyValueStore
	driver      string
	prefix      string
	defaults    func() []entity.Product
	log         *logger.Logger
	productsKey string
	historyKey  string
}

// Option configura StateStorage.
type Option func(*StateStorage)

// WithDriverName etiqueta los diagnósticos con el backend (file, sqlite, redis...).
func WithDriverName(name string) Option {
	return func(s *StateStorage) { s.driver = name }
}

// WithKeyPrefix antepone prefix a ambas claves en cualquier backend (ej. "frutos:" → "frutos:inventory_products").
func WithKeyPrefix(prefix string) Option {
	return func(s *StateStorage) { s.prefix = prefix }
}

// WithDefaultProducts reemplaza la lista semilla usada cuando no hay productos válidos.
func WithDefaultProducts(fn func() []entity.Product) Option {
	return func(s *StateStorage) { s.defaults = fn }
}

// NewStateStorage construye el adaptador. log nil equivale a logger.Nop().
func NewStateStorage(store repository.KeyValueStore, log *logger.Logger, opts ...Option) *StateStorage {
	if log == nil {
		log = logger.Nop()
	}
	s := &StateStorage{
		store:    store,
		driver:   "unknown",
		defaults: entity.InitialProducts,
		log:      log.Named("storage"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.productsKey = s.prefix + KeyProducts
	s.historyKey = s.prefix + KeyHistory
	return s
}

// Load lee ambos registros de forma independiente y aplica los valores por defecto cuando hace falta.
func (s *StateStorage) Load(ctx context.Context) entity.InventoryState {
	products, err := readRecord[entity.Product](ctx, s.store, s.productsKey)
	if err == nil && products != nil {
		err = validateProducts(products)
	}
	if err != nil {
		s.diagnose(s.productsKey, fmt.Errorf("%w: %w", domain.ErrPersistenceRead, err)).Msg("registro de productos descartado, se usa la lista inicial")
		products = nil
	}
	if products == nil {
		products = s.defaults()
	}

	history, err := readRecord[entity.Transaction](ctx, s.store, s.historyKey)
	if err == nil && history != nil {
		err = validateHistory(history)
	}
	if err != nil {
		s.diagnose(s.historyKey, fmt.Errorf("%w: %w", domain.ErrPersistenceRead, err)).Msg("registro de movimientos descartado, se usa una bitácora vacía")
		history = nil
	}
	if history == nil {
		history = []entity.Transaction{}
	}

	return entity.InventoryState{Products: products, History: history}
}

// Save serializa y escribe ambos registros. Un fallo en una clave no impide escribir la otra.
// El error devuelto envuelve domain.ErrPersistenceWrite y es solo diagnóstico: el estado en memoria
// sigue siendo la fuente de verdad de la sesión.
func (s *StateStorage) Save(ctx context.Context, state entity.InventoryState) error {
	products := state.Products
	if products == nil {
		products = []entity.Product{}
	}
	history := state.History
	if history == nil {
		history = []entity.Transaction{}
	}

	var errs []error
	if err := writeRecord(ctx, s.store, s.productsKey, products); err != nil {
		s.diagnose(s.productsKey, err).Msg("no se pudo guardar el registro de productos")
		errs = append(errs, err)
	}
	if err := writeRecord(ctx, s.store, s.historyKey, history); err != nil {
		s.diagnose(s.historyKey, err).Msg("no se pudo guardar el registro de movimientos")
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceWrite, errors.Join(errs...))
	}
	return nil
}

// Reset borra ambos registros; el siguiente Load devuelve los valores por defecto.
func (s *StateStorage) Reset(ctx context.Context) error {
	var errs []error
	for _, key := range []string{s.productsKey, s.historyKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceWrite, errors.Join(errs...))
	}
	return nil
}

func (s *StateStorage) diagnose(key string, err error) *zerolog.Event {
	return s.log.Warn().Err(err).Str("key", key).Str("driver", s.driver)
}

// readRecord devuelve nil, nil si la clave no existe.
func readRecord[T any](ctx context.Context, store repository.KeyValueStore, key string) ([]T, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("se esperaba un arreglo JSON")
	}
	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func writeRecord[T any](ctx context.Context, store repository.KeyValueStore, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}

// validateProducts: códigos no vacíos y únicos, totales no negativos.
func validateProducts(products []entity.Product) error {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.Code == "" {
			return errors.New("producto sin código")
		}
		if p.Total < 0 {
			return fmt.Errorf("producto %s con total negativo", p.Code)
		}
		if _, dup := seen[p.Code]; dup {
			return fmt.Errorf("producto %s duplicado", p.Code)
		}
		seen[p.Code] = struct{}{}
	}
	return nil
}

// validateHistory: cada movimiento con código, tipo conocido, cantidad positiva y saldo no negativo.
// Un solo elemento inválido descarta la bitácora completa, igual que con los productos.
func validateHistory(history []entity.Transaction) error {
	for i, tx := range history {
		switch {
		case tx.Code == "":
			return fmt.Errorf("movimiento %d sin código", i)
		case !tx.Type.Valid():
			return fmt.Errorf("movimiento %d con tipo %q desconocido", i, tx.Type)
		case tx.Quantity <= 0:
			return fmt.Errorf("movimiento %d con cantidad %d", i, tx.Quantity)
		case tx.ResultingBalance < 0:
			return fmt.Errorf("movimiento %d con saldo negativo", i)
		}
	}
	return nil
}
