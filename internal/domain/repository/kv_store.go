package repository

import "context"

// KeyValueStore define el puerto de persistencia clave-valor donde se guardan los registros
// del inventario (productos y bitácora), cada uno como un documento JSON completo.
//
// Get devuelve found=false (sin error) cuando la clave no existe.
// Set sobrescribe el valor completo (último escritor gana).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
