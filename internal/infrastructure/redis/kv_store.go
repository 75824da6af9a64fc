package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/control-inventario/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore implementación del puerto KeyValueStore sobre Redis (GET/SET de cadenas, sin expiración).
type KVStore struct {
	client *redis.Client
}

// NewKVStore construye el adaptador sobre un cliente ya creado. Las claves se usan tal cual;
// el prefijo de STORAGE_KEY_PREFIX lo aplica persistence.StateStorage.
func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

// Open crea el cliente y verifica la conexión con PING.
func Open(ctx context.Context, addr, password string, db int) (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewKVStore(client), nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Close() error {
	return s.client.Close()
}
