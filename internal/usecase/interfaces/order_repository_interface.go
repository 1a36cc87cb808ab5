package interfaces

import (
	"context"
	"time"

	"chefe_local/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Every state change is a single conditional write (or transaction) that
// reports whether its condition matched. A false match with a nil error means
// the order was missing or not in the expected state; callers re-read to tell
// the two apart.
//
// Not-found lookups return a zero Order and a nil error.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListOpen(ctx context.Context) ([]entities.Order, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Order, error)
	ListByCookID(ctx context.Context, cookID string) ([]entities.Order, error)

	// Accept sets cook_id and status=accepted only while the order is pending
	// and unassigned. When agreedPrice is non-zero it must equal total_price.
	Accept(ctx context.Context, id, cookID string, agreedPrice decimal.Decimal) (entities.Order, bool, error)
	// AcceptOffer moves the order to accepted at the offer price and marks the
	// offer accepted in one transaction.
	AcceptOffer(ctx context.Context, offer entities.Offer, econ entities.Economics) (entities.Order, bool, error)
	// Advance moves an order assigned to cookID from one status to another.
	Advance(ctx context.Context, id, cookID string, from, to entities.OrderStatus) (entities.Order, bool, error)
	// CompleteAndCredit moves cooking -> completed and credits the cook wallet
	// with the order profit in one transaction.
	CompleteAndCredit(ctx context.Context, id, cookID string, profit decimal.Decimal) (entities.Order, bool, error)
	// Cancel moves the order from the observed status to cancelled.
	Cancel(ctx context.Context, id string, from entities.OrderStatus) (entities.Order, bool, error)

	// ReservePayment moves payment_state to processing for attempt until
	// leaseUntil. It matches only when the order is not paid and no other
	// attempt holds a live lease.
	ReservePayment(ctx context.Context, id, attempt string, now, leaseUntil time.Time) (bool, error)
	// ReleasePayment ends the reservation held by attempt, leaving the order
	// paid or free for the next attempt.
	ReleasePayment(ctx context.Context, id, attempt string, paid bool) error
}
