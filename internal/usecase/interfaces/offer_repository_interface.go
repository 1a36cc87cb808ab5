package interfaces

import (
	"context"

	"chefe_local/internal/domain/entities"
)

// IOfferRepository abstracts DynamoDB persistence for Offer.
type IOfferRepository interface {
	// CreateForPendingOrder stores the offer only while its order is still
	// pending with no cook. It reports false when the order moved on.
	CreateForPendingOrder(ctx context.Context, offer entities.Offer) (bool, error)
	GetByID(ctx context.Context, id string) (entities.Offer, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Offer, error)
	// RejectPending marks every sent offer of the order as rejected, except
	// keepID. It returns how many offers were rejected.
	RejectPending(ctx context.Context, orderID, keepID string) (int, error)
}
