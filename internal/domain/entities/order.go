package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of a meal request.
//
// Legal path: pending -> accepted -> arrived -> cooking -> completed.
// cancelled is reachable from pending and accepted only.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusArrived   OrderStatus = "arrived"
	OrderStatusCooking   OrderStatus = "cooking"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var advanceTransitions = map[OrderStatus]OrderStatus{
	OrderStatusAccepted: OrderStatusArrived,
	OrderStatusArrived:  OrderStatusCooking,
	OrderStatusCooking:  OrderStatusCompleted,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusArrived,
		OrderStatusCooking, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// PreviousForAdvance returns the only status from which next can be reached by
// the assigned cook. ok is false when next is not an advance target.
func PreviousForAdvance(next OrderStatus) (from OrderStatus, ok bool) {
	for f, t := range advanceTransitions {
		if t == next {
			return f, true
		}
	}
	return "", false
}

// CanAdvanceTo reports whether the cook-driven transition s -> next is legal.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	t, ok := advanceTransitions[s]
	return ok && t == next
}

// Cancellable reports whether an order in status s may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusAccepted
}

// PaymentState guards the charge of an order. Empty means no charge is in
// flight and none was approved yet.
type PaymentState string

const (
	PaymentStateNone       PaymentState = ""
	PaymentStateProcessing PaymentState = "processing"
	PaymentStatePaid       PaymentState = "paid"
)

type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodPix || m == PaymentMethodCard
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// Order is the aggregate root of the marketplace.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI status-index: status / created_at (open orders radar)
//   - GSI client_id-index, cook_id-index: history
//
// CookID is empty while the order is pending and never changes once set.
type Order struct {
	ID              string
	ClientID        string
	CookID          string
	DishDescription string
	PeopleCount     int
	PackageLevel    PackageLevel
	TotalPrice      decimal.Decimal
	PlatformFee     decimal.Decimal
	CookProfit      decimal.Decimal
	PaymentMethod   PaymentMethod
	Location        Location
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AcceptedAt      *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time

	// PaymentAttempt identifies the charge holding the processing state until
	// PaymentLeaseUntil.
	PaymentState      PaymentState
	PaymentAttempt    string
	PaymentLeaseUntil *time.Time
}

func (o Order) Economics() Economics {
	return Economics{Price: o.TotalPrice, PlatformFee: o.PlatformFee, CookProfit: o.CookProfit}
}

// IsParticipant reports whether userID is the owner client or the assigned cook.
func (o Order) IsParticipant(userID string) bool {
	return userID != "" && (o.ClientID == userID || o.CookID == userID)
}
