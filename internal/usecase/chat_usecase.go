package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	maxMessageLength = 2000
	dedupWindow      = 256
)

// IChatUseCase relays chat lines between the client and the assigned cook of
// an order. Messages are persisted before they are published.
type IChatUseCase interface {
	SendMessage(ctx context.Context, s entities.Session, orderID, content string) (entities.Message, error)
	ListMessages(ctx context.Context, s entities.Session, orderID string) ([]entities.Message, error)
	Subscribe(ctx context.Context, s entities.Session, orderID string, handler func(entities.OrderEvent)) (func(), error)
}

type ChatUseCase struct {
	orders     interfaces.IOrderRepository
	messages   interfaces.IMessageRepository
	publisher  interfaces.IEventPublisher
	subscriber interfaces.IEventSubscriber
	now        func() time.Time
}

var _ IChatUseCase = (*ChatUseCase)(nil)

func NewChatUseCase(
	orders interfaces.IOrderRepository,
	messages interfaces.IMessageRepository,
	publisher interfaces.IEventPublisher,
	subscriber interfaces.IEventSubscriber,
) *ChatUseCase {
	return &ChatUseCase{
		orders:     orders,
		messages:   messages,
		publisher:  publisher,
		subscriber: subscriber,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *ChatUseCase) participantOrder(ctx context.Context, s entities.Session, orderID string) (entities.Order, error) {
	if err := requireSession(s); err != nil {
		return entities.Order{}, err
	}
	o, err := loadOrder(ctx, u.orders, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !o.IsParticipant(s.UserID) {
		return entities.Order{}, ErrNotOrderParticipant
	}
	return o, nil
}

func (u *ChatUseCase) SendMessage(ctx context.Context, s entities.Session, orderID, content string) (entities.Message, error) {
	o, err := u.participantOrder(ctx, s, orderID)
	if err != nil {
		return entities.Message{}, err
	}
	if o.Status.IsTerminal() {
		return entities.Message{}, ErrOrderClosed
	}
	if o.Status == entities.OrderStatusPending {
		return entities.Message{}, ErrChatNotOpen
	}
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLength {
		return entities.Message{}, ErrInvalidMessage
	}

	m := entities.Message{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		SenderID:  s.UserID,
		Content:   content,
		Type:      entities.MessageTypeText,
		CreatedAt: u.now(),
	}
	saved, err := u.messages.Append(ctx, m)
	if err != nil {
		log.Printf("[chat][usecase] append failed order_id=%s err=%v", o.ID, err)
		return entities.Message{}, upstream(err)
	}

	publishOrderEvent(ctx, u.publisher, entities.OrderEvent{
		ID:         saved.ID,
		Type:       entities.EventChatMessage,
		OrderID:    o.ID,
		Message:    &saved,
		OccurredAt: saved.CreatedAt,
	})
	return saved, nil
}

func (u *ChatUseCase) ListMessages(ctx context.Context, s entities.Session, orderID string) ([]entities.Message, error) {
	o, err := u.participantOrder(ctx, s, orderID)
	if err != nil {
		return nil, err
	}
	msgs, err := u.messages.ListByOrderID(ctx, o.ID)
	if err != nil {
		return nil, upstream(err)
	}
	return msgs, nil
}

// Subscribe streams the order events to handler, dropping redelivered events.
func (u *ChatUseCase) Subscribe(ctx context.Context, s entities.Session, orderID string, handler func(entities.OrderEvent)) (func(), error) {
	o, err := u.participantOrder(ctx, s, orderID)
	if err != nil {
		return nil, err
	}
	if u.subscriber == nil {
		return nil, kindError(ErrUpstream, "realtime channel not configured")
	}

	seen := newRecentIDs(dedupWindow)
	cancel, err := u.subscriber.Subscribe(ctx, o.ID, func(ev entities.OrderEvent) {
		if !seen.add(ev.ID) {
			return
		}
		handler(ev)
	})
	if err != nil {
		log.Printf("[chat][usecase] subscribe failed order_id=%s err=%v", o.ID, err)
		return nil, upstream(err)
	}
	log.Printf("[chat][usecase] subscribed order_id=%s user_id=%s", o.ID, s.UserID)
	return cancel, nil
}

// recentIDs remembers the last n event ids.
type recentIDs struct {
	mu    sync.Mutex
	ring  []string
	next  int
	index map[string]struct{}
}

func newRecentIDs(n int) *recentIDs {
	return &recentIDs{ring: make([]string, n), index: make(map[string]struct{}, n)}
}

// add returns false when id was already seen.
func (r *recentIDs) add(id string) bool {
	if id == "" {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[id]; ok {
		return false
	}
	if old := r.ring[r.next]; old != "" {
		delete(r.index, old)
	}
	r.ring[r.next] = id
	r.index[id] = struct{}{}
	r.next = (r.next + 1) % len(r.ring)
	return true
}
