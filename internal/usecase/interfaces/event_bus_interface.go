package interfaces

import (
	"context"

	"chefe_local/internal/domain/entities"
)

// IEventPublisher fans order events out to connected clients.
type IEventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}

// IEventSubscriber delivers the events of one order, at least once, until the
// returned cancel func is called or ctx ends.
type IEventSubscriber interface {
	Subscribe(ctx context.Context, orderID string, handler func(entities.OrderEvent)) (cancel func(), err error)
}
