package inventory

import (
	"context"

	"github.com/jhoicas/control-inventario/internal/domain/entity"
)

// StateStorage puerto del adaptador de almacenamiento (Load nunca falla; Save solo diagnostica).
type StateStorage interface {
	Load(ctx context.Context) entity.InventoryState
	Save(ctx context.Context, state entity.InventoryState) error
}

// MovementPublisher notifica a terceros cada movimiento aplicado (ej. RabbitMQ).
type MovementPublisher interface {
	PublishMovement(ctx context.Context, tx entity.Transaction) error
}

// NopPublisher no publica nada; se usa cuando no hay broker configurado.
type NopPublisher struct{}

func (NopPublisher) PublishMovement(context.Context, entity.Transaction) error { return nil }
