package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	appinventory "github.com/jhoicas/control-inventario/internal/application/inventory"
	"github.com/jhoicas/control-inventario/internal/domain/entity"
)

var _ appinventory.MovementPublisher = (*Publisher)(nil)

// Channel subconjunto de *amqp.Channel usado para publicar.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher publica cada movimiento aplicado como JSON en un exchange topic.
type Publisher struct {
	ch       Channel
	exchange string
	now      func() time.Time
}

// NewPublisher construye el publicador sobre un canal abierto.
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, now: time.Now}
}

// RoutingKey movimiento.<entrada|salida>.<código>, ej. movimiento.entrada.SP000271.
func RoutingKey(tx entity.Transaction) string {
	return fmt.Sprintf("movimiento.%s.%s", strings.ToLower(string(tx.Type)), tx.Code)
}

// PublishMovement implementa appinventory.MovementPublisher.
func (p *Publisher) PublishMovement(ctx context.Context, tx entity.Transaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("codificar movimiento: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,     // exchange
		RoutingKey(tx), // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    p.now(),
			Type:         "inventario.movimiento",
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar movimiento %s: %w", tx.Code, err)
	}
	return nil
}
