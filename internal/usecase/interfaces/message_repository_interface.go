package interfaces

import (
	"context"

	"chefe_local/internal/domain/entities"
)

// IMessageRepository abstracts the append-only chat log.
type IMessageRepository interface {
	Append(ctx context.Context, m entities.Message) (entities.Message, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Message, error)
}
