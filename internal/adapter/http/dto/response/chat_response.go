package response

import (
	"time"

	"chefe_local/internal/domain/entities"
)

type MessageResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func FromMessage(m entities.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		OrderID:   m.OrderID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Type:      string(m.Type),
		CreatedAt: m.CreatedAt,
	}
}

func FromMessages(ms []entities.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMessage(m))
	}
	return out
}

// EventResponse is the data of one server-sent event on /orders/:id/events.
type EventResponse struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	OrderID    string           `json:"order_id"`
	Status     string           `json:"status,omitempty"`
	CookID     string           `json:"cook_id,omitempty"`
	Message    *MessageResponse `json:"message,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func FromEvent(ev entities.OrderEvent) EventResponse {
	res := EventResponse{
		ID:         ev.ID,
		Type:       ev.Type,
		OrderID:    ev.OrderID,
		Status:     string(ev.Status),
		CookID:     ev.CookID,
		OccurredAt: ev.OccurredAt,
	}
	if ev.Message != nil {
		m := FromMessage(*ev.Message)
		res.Message = &m
	}
	return res
}
