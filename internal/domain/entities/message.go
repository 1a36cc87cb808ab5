package entities

import "time"

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system"
)

// Message is one chat line scoped to an order. Messages are append-only and
// ordered by SortKey (created_at#id).
type Message struct {
	ID        string      `json:"id"`
	OrderID   string      `json:"order_id"`
	SenderID  string      `json:"sender_id"`
	Content   string      `json:"content"`
	Type      MessageType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

// sortKeyLayout keeps every fractional digit so keys compare lexically in
// time order.
const sortKeyLayout = "2006-01-02T15:04:05.000000000Z"

func (m Message) SortKey() string {
	return m.CreatedAt.UTC().Format(sortKeyLayout) + "#" + m.ID
}
