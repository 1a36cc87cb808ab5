package entities

import "time"

// Session identifies the caller of a use case. It is built from the request
// credentials and passed explicitly to every operation.
type Session struct {
	UserID string
	Admin  bool
}

func (s Session) Authenticated() bool { return s.UserID != "" }

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventChatMessage        = "chat.message"
)

// OrderEvent is published on the realtime channel of an order. ID is unique per
// event so subscribers can drop redelivered copies.
type OrderEvent struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OrderID    string      `json:"order_id"`
	Status     OrderStatus `json:"status,omitempty"`
	CookID     string      `json:"cook_id,omitempty"`
	Message    *Message    `json:"message,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}
