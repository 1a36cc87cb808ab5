package usecase

import (
	"context"
	"sync"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// memStore mirrors the conditional writes of the DynamoDB repositories under
// one mutex, so concurrent use case calls race on the same rules.
type memStore struct {
	mu          sync.Mutex
	orders      map[string]entities.Order
	offers      map[string]entities.Offer
	users       map[string]entities.User
	withdrawals map[string]entities.Withdrawal
	messages    map[string][]entities.Message
	payments    map[string]entities.Payment
}

func newMemStore() *memStore {
	return &memStore{
		orders:      map[string]entities.Order{},
		offers:      map[string]entities.Offer{},
		users:       map[string]entities.User{},
		withdrawals: map[string]entities.Withdrawal{},
		messages:    map[string][]entities.Message{},
		payments:    map[string]entities.Payment{},
	}
}

func (s *memStore) addUser(u entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memStore) user(id string) entities.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *memStore) order(id string) entities.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

type (
	memOrders      struct{ *memStore }
	memOffers      struct{ *memStore }
	memUsers       struct{ *memStore }
	memWithdrawals struct{ *memStore }
	memMessages    struct{ *memStore }
	memPayments    struct{ *memStore }
)

var (
	_ interfaces.IOrderRepository      = memOrders{}
	_ interfaces.IOfferRepository      = memOffers{}
	_ interfaces.IUserRepository       = memUsers{}
	_ interfaces.IWithdrawalRepository = memWithdrawals{}
	_ interfaces.IMessageRepository    = memMessages{}
	_ interfaces.IPaymentRepository    = memPayments{}
)

func (r memOrders) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return o, nil
}

func (r memOrders) GetByID(_ context.Context, id string) (entities.Order, error) {
	return r.order(id), nil
}

func (r memOrders) list(keep func(entities.Order) bool) []entities.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func (r memOrders) ListOpen(_ context.Context) ([]entities.Order, error) {
	return r.list(func(o entities.Order) bool { return o.Status == entities.OrderStatusPending }), nil
}

func (r memOrders) ListByClientID(_ context.Context, clientID string) ([]entities.Order, error) {
	return r.list(func(o entities.Order) bool { return o.ClientID == clientID }), nil
}

func (r memOrders) ListByCookID(_ context.Context, cookID string) ([]entities.Order, error) {
	return r.list(func(o entities.Order) bool { return o.CookID == cookID }), nil
}

func (r memOrders) Accept(_ context.Context, id, cookID string, agreedPrice decimal.Decimal) (entities.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != entities.OrderStatusPending || o.CookID != "" {
		return entities.Order{}, false, nil
	}
	if !agreedPrice.IsZero() && !o.TotalPrice.Equal(agreedPrice) {
		return entities.Order{}, false, nil
	}
	now := time.Now().UTC()
	o.Status = entities.OrderStatusAccepted
	o.CookID = cookID
	o.AcceptedAt = &now
	o.UpdatedAt = now
	r.orders[id] = o
	return o, true, nil
}

func (r memOrders) AcceptOffer(_ context.Context, offer entities.Offer, econ entities.Economics) (entities.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[offer.OrderID]
	of, ofOK := r.offers[offer.ID]
	if !ok || !ofOK || o.Status != entities.OrderStatusPending || o.CookID != "" || of.Status != entities.OfferStatusSent {
		return entities.Order{}, false, nil
	}
	now := time.Now().UTC()
	o.Status = entities.OrderStatusAccepted
	o.CookID = offer.CookID
	o.TotalPrice = econ.Price
	o.PlatformFee = econ.PlatformFee
	o.CookProfit = econ.CookProfit
	o.AcceptedAt = &now
	o.UpdatedAt = now
	r.orders[o.ID] = o
	of.Status = entities.OfferStatusAccepted
	of.UpdatedAt = now
	r.offers[of.ID] = of
	return o, true, nil
}

func (r memOrders) Advance(_ context.Context, id, cookID string, from, to entities.OrderStatus) (entities.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from || o.CookID != cookID {
		return entities.Order{}, false, nil
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return o, true, nil
}

func (r memOrders) CompleteAndCredit(_ context.Context, id, cookID string, profit decimal.Decimal) (entities.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != entities.OrderStatusCooking || o.CookID != cookID {
		return entities.Order{}, false, nil
	}
	now := time.Now().UTC()
	o.Status = entities.OrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	r.orders[id] = o
	cook := r.users[cookID]
	cook.WalletBalance = cook.WalletBalance.Add(profit)
	r.users[cookID] = cook
	return o, true, nil
}

func (r memOrders) Cancel(_ context.Context, id string, from entities.OrderStatus) (entities.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return entities.Order{}, false, nil
	}
	now := time.Now().UTC()
	o.Status = entities.OrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	r.orders[id] = o
	return o, true, nil
}

func (r memOrders) ReservePayment(_ context.Context, id, attempt string, now, leaseUntil time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return false, nil
	}
	switch o.PaymentState {
	case entities.PaymentStateNone:
	case entities.PaymentStateProcessing:
		if o.PaymentLeaseUntil == nil || !o.PaymentLeaseUntil.Before(now) {
			return false, nil
		}
	default:
		return false, nil
	}
	o.PaymentState = entities.PaymentStateProcessing
	o.PaymentAttempt = attempt
	o.PaymentLeaseUntil = &leaseUntil
	r.orders[id] = o
	return true, nil
}

func (r memOrders) ReleasePayment(_ context.Context, id, attempt string, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.PaymentAttempt != attempt {
		return nil
	}
	o.PaymentState = entities.PaymentStateNone
	if paid {
		o.PaymentState = entities.PaymentStatePaid
	}
	o.PaymentAttempt = ""
	o.PaymentLeaseUntil = nil
	r.orders[id] = o
	return nil
}

func (r memOffers) CreateForPendingOrder(_ context.Context, offer entities.Offer) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[offer.OrderID]
	if !ok || o.Status != entities.OrderStatusPending || o.CookID != "" {
		return false, nil
	}
	r.offers[offer.ID] = offer
	return true, nil
}

func (r memOffers) GetByID(_ context.Context, id string) (entities.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offers[id], nil
}

func (r memOffers) ListByOrderID(_ context.Context, orderID string) ([]entities.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Offer
	for _, of := range r.offers {
		if of.OrderID == orderID {
			out = append(out, of)
		}
	}
	return out, nil
}

func (r memOffers) RejectPending(_ context.Context, orderID, keepID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, of := range r.offers {
		if of.OrderID == orderID && of.ID != keepID && of.Status == entities.OfferStatusSent {
			of.Status = entities.OfferStatusRejected
			r.offers[id] = of
			n++
		}
	}
	return n, nil
}

func (r memUsers) SaveProfile(_ context.Context, u entities.User) (entities.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[u.ID]
	if !ok {
		u.IsActive = true
		r.users[u.ID] = u
		return u, true, nil
	}
	if current.Type != u.Type {
		return entities.User{}, false, nil
	}
	current.Name, current.Email, current.Phone = u.Name, u.Email, u.Phone
	current.PixKey, current.CookLevel = u.PixKey, u.CookLevel
	current.UpdatedAt = u.UpdatedAt
	r.users[u.ID] = current
	return current, true, nil
}

func (r memUsers) GetByID(_ context.Context, id string) (entities.User, error) {
	return r.user(id), nil
}

func (r memUsers) SetActive(_ context.Context, id string, active bool) (entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return entities.User{}, nil
	}
	u.IsActive = active
	r.users[id] = u
	return u, nil
}

func (r memWithdrawals) CreateAndDebit(_ context.Context, w entities.Withdrawal, observedBalance decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[w.UserID]
	if !ok || !u.WalletBalance.Equal(observedBalance) {
		return false, nil
	}
	u.WalletBalance = decimal.Zero
	r.users[u.ID] = u
	r.withdrawals[w.ID] = w
	return true, nil
}

func (r memWithdrawals) GetByID(_ context.Context, id string) (entities.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.withdrawals[id], nil
}

func (r memWithdrawals) ListByUserID(_ context.Context, userID string) ([]entities.Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Withdrawal
	for _, w := range r.withdrawals {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r memWithdrawals) MarkPaid(_ context.Context, id string) (entities.Withdrawal, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok || w.Status != entities.WithdrawalStatusPending {
		return entities.Withdrawal{}, false, nil
	}
	now := time.Now().UTC()
	w.Status = entities.WithdrawalStatusPaid
	w.PaidAt = &now
	r.withdrawals[id] = w
	return w, true, nil
}

func (r memMessages) Append(_ context.Context, m entities.Message) (entities.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[m.OrderID] = append(r.messages[m.OrderID], m)
	return m, nil
}

func (r memMessages) ListByOrderID(_ context.Context, orderID string) ([]entities.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Message(nil), r.messages[orderID]...), nil
}

func (r memPayments) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.ID] = p
	return p, nil
}

func (r memPayments) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.payments[id], nil
}

func (r memPayments) ListByOrderID(_ context.Context, orderID string) ([]entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

// memBus records published events and fans them out to subscribers.
type memBus struct {
	mu     sync.Mutex
	events []entities.OrderEvent
	subs   map[int]func(entities.OrderEvent)
	subKey map[int]string
	next   int
}

func newMemBus() *memBus {
	return &memBus{subs: map[int]func(entities.OrderEvent){}, subKey: map[int]string{}}
}

func (b *memBus) Publish(_ context.Context, event entities.OrderEvent) error {
	b.mu.Lock()
	b.events = append(b.events, event)
	var handlers []func(entities.OrderEvent)
	for k, h := range b.subs {
		if b.subKey[k] == event.OrderID {
			handlers = append(handlers, h)
		}
	}
	b.mu.Unlock()
	for _, h := range handlers {
		h(event)
	}
	return nil
}

func (b *memBus) Subscribe(_ context.Context, orderID string, handler func(entities.OrderEvent)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := b.next
	b.next++
	b.subs[key] = handler
	b.subKey[key] = orderID
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, key)
		delete(b.subKey, key)
	}, nil
}

func (b *memBus) published() []entities.OrderEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entities.OrderEvent(nil), b.events...)
}

// fixture wires every use case to one memStore.
type fixture struct {
	store    *memStore
	bus      *memBus
	orders   *OrderUseCase
	offers   *OfferUseCase
	wallet   *WalletUseCase
	chat     *ChatUseCase
	users    *UserUseCase
	payments memPayments
}

func newFixture() *fixture {
	st := newMemStore()
	bus := newMemBus()
	f := &fixture{
		store:    st,
		bus:      bus,
		orders:   NewOrderUseCase(memOrders{st}, memOffers{st}, memUsers{st}, memPayments{st}, bus),
		offers:   NewOfferUseCase(memOrders{st}, memOffers{st}, memUsers{st}, bus),
		wallet:   NewWalletUseCase(memUsers{st}, memWithdrawals{st}),
		chat:     NewChatUseCase(memOrders{st}, memMessages{st}, bus, bus),
		users:    NewUserUseCase(memUsers{st}),
		payments: memPayments{st},
	}
	st.addUser(entities.User{ID: "client-1", Type: entities.UserTypeClient, Name: "Ana", IsActive: true})
	st.addUser(entities.User{ID: "cook-1", Type: entities.UserTypeCook, Name: "Bruno", PixKey: "bruno@pix", IsActive: true})
	return f
}

func (f *fixture) addCook(id string) entities.Session {
	f.store.addUser(entities.User{ID: id, Type: entities.UserTypeCook, Name: id, PixKey: id + "@pix", IsActive: true})
	return entities.Session{UserID: id}
}

func (f *fixture) createBasicOrder() entities.Order {
	o, err := f.orders.CreateOrder(context.Background(), clientSession, CreateOrderCommand{
		DishDescription: "feijoada",
		PeopleCount:     4,
		PackageLevel:    "basic",
		Location:        entities.Location{Latitude: -23.55, Longitude: -46.63},
		PaymentMethod:   "pix",
	})
	if err != nil {
		panic(err)
	}
	return o
}
