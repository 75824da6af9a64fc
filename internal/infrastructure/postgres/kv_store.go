package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/control-inventario/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// Querier abstrae pool o tx de pgx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// KVStore implementación del puerto KeyValueStore sobre PostgreSQL (tabla kv_store, valor JSONB).
type KVStore struct {
	q    Querier
	pool *pgxpool.Pool
}

// NewKVStore construye el adaptador sobre un Querier (pool o tx). Close no cierra nada.
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q}
}

// OpenKVStore usa el pool, crea la tabla si no existe y toma propiedad del pool (Close lo cierra).
func OpenKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	s := NewKVStore(pool)
	s.pool = pool
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureSchema crea la tabla kv_store si no existe.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

// Get lee el documento de la clave. Un valor ausente devuelve found=false.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.q.QueryRow(ctx, `SELECT value::text FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set inserta o reemplaza el documento de la clave.
// El valor se envía como texto y se convierte a JSONB; un JSON inválido es rechazado por PostgreSQL.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave (sin error si no existe).
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}

// Close cierra el pool si el store lo abrió.
func (s *KVStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
