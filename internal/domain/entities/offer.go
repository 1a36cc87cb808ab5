package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferStatus string

const (
	OfferStatusSent     OfferStatus = "sent"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)

// Offer is a cook's bid on a pending order. It is resolved together with the
// parent order leaving pending.
type Offer struct {
	ID        string
	OrderID   string
	CookID    string
	Price     decimal.Decimal
	Status    OfferStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
