package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IOrderUseCase is the order lifecycle manager.
//
// Every state change is delegated to a single conditional write in the store;
// nothing here coordinates callers in memory. A lost race is reported as a
// Conflict (ErrOrderAlreadyTaken, ErrIllegalTransition) and never retried.
type IOrderUseCase interface {
	ListPackages() []PackageQuote
	QuotePackage(level string) (entities.Economics, error)

	CreateOrder(ctx context.Context, s entities.Session, cmd CreateOrderCommand) (entities.Order, error)
	GetOrder(ctx context.Context, s entities.Session, id string) (entities.Order, error)
	ListMyOrders(ctx context.Context, s entities.Session) ([]entities.Order, error)
	ListOpenOrders(ctx context.Context, s entities.Session, filter RadarFilter) ([]entities.Order, error)
	AcceptOrder(ctx context.Context, s entities.Session, id string, agreedPrice decimal.Decimal) (entities.Order, error)
	AdvanceStatus(ctx context.Context, s entities.Session, id string, next entities.OrderStatus) (entities.Order, error)
	CancelOrder(ctx context.Context, s entities.Session, id string) (CancelResult, error)
}

type CreateOrderCommand struct {
	DishDescription string
	PeopleCount     int
	PackageLevel    string
	Location        entities.Location
	PaymentMethod   string
}

// RadarFilter narrows the open orders to a radius around the cook. A zero
// RadiusKm disables the filter.
type RadarFilter struct {
	Center   entities.Location
	RadiusKm float64
}

type PackageQuote struct {
	Level entities.PackageLevel
	entities.Economics
}

// CancelResult reports whether a captured payment needs a manual refund.
type CancelResult struct {
	Order          entities.Order
	RefundRequired bool
}

type OrderUseCase struct {
	orders    interfaces.IOrderRepository
	offers    interfaces.IOfferRepository
	users     interfaces.IUserRepository
	payments  interfaces.IPaymentRepository
	publisher interfaces.IEventPublisher
	now       func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	orders interfaces.IOrderRepository,
	offers interfaces.IOfferRepository,
	users interfaces.IUserRepository,
	payments interfaces.IPaymentRepository,
	publisher interfaces.IEventPublisher,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		offers:    offers,
		users:     users,
		payments:  payments,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) ListPackages() []PackageQuote {
	quotes := make([]PackageQuote, 0, len(entities.PackageLevels))
	for _, level := range entities.PackageLevels {
		econ, _ := entities.ComputePackageEconomics(level)
		quotes = append(quotes, PackageQuote{Level: level, Economics: econ})
	}
	return quotes
}

func (u *OrderUseCase) QuotePackage(level string) (entities.Economics, error) {
	parsed, err := entities.ParsePackageLevel(level)
	if err != nil {
		return entities.Economics{}, ErrInvalidPackageLevel
	}
	return entities.ComputePackageEconomics(parsed)
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, s entities.Session, cmd CreateOrderCommand) (entities.Order, error) {
	log.Printf("[order][usecase] create start user_id=%s package=%q", s.UserID, cmd.PackageLevel)
	client, err := loadClient(ctx, u.users, s)
	if err != nil {
		return entities.Order{}, err
	}

	dish := strings.TrimSpace(cmd.DishDescription)
	if dish == "" {
		return entities.Order{}, ErrInvalidDish
	}
	if cmd.PeopleCount <= 0 {
		return entities.Order{}, ErrInvalidPeopleCount
	}
	if !cmd.Location.Valid() {
		return entities.Order{}, ErrInvalidLocation
	}
	method := entities.PaymentMethod(strings.ToLower(strings.TrimSpace(cmd.PaymentMethod)))
	if method == "" {
		method = entities.PaymentMethodPix
	}
	if !method.Valid() {
		return entities.Order{}, ErrInvalidPaymentMethod
	}
	econ, err := u.QuotePackage(cmd.PackageLevel)
	if err != nil {
		return entities.Order{}, err
	}
	level, _ := entities.ParsePackageLevel(cmd.PackageLevel)

	now := u.now()
	o := entities.Order{
		ID:              uuid.NewString(),
		ClientID:        client.ID,
		DishDescription: dish,
		PeopleCount:     cmd.PeopleCount,
		PackageLevel:    level,
		TotalPrice:      econ.Price,
		PlatformFee:     econ.PlatformFee,
		CookProfit:      econ.CookProfit,
		PaymentMethod:   method,
		Location:        cmd.Location,
		Status:          entities.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		log.Printf("[order][usecase] create failed user_id=%s err=%v", client.ID, err)
		return entities.Order{}, upstream(err)
	}
	log.Printf("[order][usecase] create success order_id=%s price=%s fee=%s", created.ID, created.TotalPrice, created.PlatformFee)

	u.publish(ctx, entities.EventOrderCreated, created)
	return created, nil
}

func (u *OrderUseCase) GetOrder(ctx context.Context, s entities.Session, id string) (entities.Order, error) {
	if err := requireSession(s); err != nil {
		return entities.Order{}, err
	}
	o, err := loadOrder(ctx, u.orders, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.IsParticipant(s.UserID) || s.Admin {
		return o, nil
	}
	// Pending orders are public to cooks browsing the radar.
	if o.Status == entities.OrderStatusPending {
		if _, err := loadCook(ctx, u.users, s); err == nil {
			return o, nil
		}
	}
	return entities.Order{}, ErrNotOrderParticipant
}

func (u *OrderUseCase) ListMyOrders(ctx context.Context, s entities.Session) ([]entities.Order, error) {
	user, err := loadActor(ctx, u.users, s)
	if err != nil {
		return nil, err
	}

	var orders []entities.Order
	if user.IsCook() {
		orders, err = u.orders.ListByCookID(ctx, user.ID)
	} else {
		orders, err = u.orders.ListByClientID(ctx, user.ID)
	}
	if err != nil {
		return nil, upstream(err)
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (u *OrderUseCase) ListOpenOrders(ctx context.Context, s entities.Session, filter RadarFilter) ([]entities.Order, error) {
	if _, err := loadCook(ctx, u.users, s); err != nil {
		return nil, err
	}
	if filter.RadiusKm < 0 || (filter.RadiusKm > 0 && !filter.Center.Valid()) {
		return nil, ErrInvalidLocation
	}

	orders, err := u.orders.ListOpen(ctx)
	if err != nil {
		return nil, upstream(err)
	}

	open := orders[:0]
	for _, o := range orders {
		if o.Status != entities.OrderStatusPending || o.CookID != "" {
			continue
		}
		if filter.RadiusKm > 0 && distanceKm(filter.Center, o.Location) > filter.RadiusKm {
			continue
		}
		open = append(open, o)
	}
	sortNewestFirst(open)
	return open, nil
}

func (u *OrderUseCase) AcceptOrder(ctx context.Context, s entities.Session, id string, agreedPrice decimal.Decimal) (entities.Order, error) {
	log.Printf("[order][usecase] accept start order_id=%s cook_id=%s agreed_price=%s", id, s.UserID, agreedPrice)
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidID
	}
	if agreedPrice.IsNegative() {
		return entities.Order{}, ErrInvalidAmount
	}
	cook, err := loadCook(ctx, u.users, s)
	if err != nil {
		return entities.Order{}, err
	}
	if !cook.IsActive {
		return entities.Order{}, ErrCookUnavailable
	}

	accepted, matched, err := u.orders.Accept(ctx, id, cook.ID, agreedPrice)
	if err != nil {
		log.Printf("[order][usecase] accept failed order_id=%s cook_id=%s err=%v", id, cook.ID, err)
		return entities.Order{}, upstream(err)
	}
	if !matched {
		current, err := loadOrder(ctx, u.orders, id)
		if err != nil {
			return entities.Order{}, err
		}
		if current.Status == entities.OrderStatusPending && current.CookID == "" && !agreedPrice.IsZero() {
			log.Printf("[order][usecase] accept price mismatch order_id=%s stored=%s agreed=%s", id, current.TotalPrice, agreedPrice)
			return entities.Order{}, ErrOrderPriceChanged
		}
		log.Printf("[order][usecase] accept lost race order_id=%s cook_id=%s status=%s", id, cook.ID, current.Status)
		return entities.Order{}, unavailableOrderError(current)
	}
	log.Printf("[order][usecase] accept success order_id=%s cook_id=%s", id, cook.ID)

	u.rejectCompetingOffers(ctx, id, "")
	u.publish(ctx, entities.EventOrderStatusChanged, accepted)
	return accepted, nil
}

func (u *OrderUseCase) AdvanceStatus(ctx context.Context, s entities.Session, id string, next entities.OrderStatus) (entities.Order, error) {
	log.Printf("[order][usecase] advance start order_id=%s cook_id=%s next=%s", id, s.UserID, next)
	if err := requireSession(s); err != nil {
		return entities.Order{}, err
	}
	if !next.Valid() {
		return entities.Order{}, ErrInvalidStatus
	}
	from, ok := entities.PreviousForAdvance(next)
	if !ok {
		return entities.Order{}, ErrIllegalTransition
	}

	o, err := loadOrder(ctx, u.orders, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.CookID == "" || o.Status != from {
		log.Printf("[order][usecase] advance illegal order_id=%s status=%s next=%s", o.ID, o.Status, next)
		return entities.Order{}, ErrIllegalTransition
	}
	if o.CookID != s.UserID {
		return entities.Order{}, ErrNotAssignedCook
	}

	var (
		updated entities.Order
		matched bool
	)
	if next == entities.OrderStatusCompleted {
		updated, matched, err = u.orders.CompleteAndCredit(ctx, o.ID, o.CookID, o.CookProfit)
	} else {
		updated, matched, err = u.orders.Advance(ctx, o.ID, o.CookID, from, next)
	}
	if err != nil {
		log.Printf("[order][usecase] advance failed order_id=%s next=%s err=%v", o.ID, next, err)
		return entities.Order{}, upstream(err)
	}
	if !matched {
		log.Printf("[order][usecase] advance condition failed order_id=%s next=%s", o.ID, next)
		return entities.Order{}, ErrIllegalTransition
	}
	if next == entities.OrderStatusCompleted {
		log.Printf("[order][usecase] wallet credited order_id=%s cook_id=%s amount=%s", o.ID, o.CookID, o.CookProfit)
	}
	log.Printf("[order][usecase] advance success order_id=%s status=%s", updated.ID, updated.Status)

	u.publish(ctx, entities.EventOrderStatusChanged, updated)
	return updated, nil
}

func (u *OrderUseCase) CancelOrder(ctx context.Context, s entities.Session, id string) (CancelResult, error) {
	log.Printf("[order][usecase] cancel start order_id=%s user_id=%s", id, s.UserID)
	if err := requireSession(s); err != nil {
		return CancelResult{}, err
	}
	o, err := loadOrder(ctx, u.orders, id)
	if err != nil {
		return CancelResult{}, err
	}

	switch {
	case o.Status == entities.OrderStatusPending && o.ClientID != s.UserID:
		return CancelResult{}, ErrNotOrderOwner
	case !o.IsParticipant(s.UserID):
		return CancelResult{}, ErrNotOrderParticipant
	case !o.Status.Cancellable():
		return CancelResult{}, ErrOrderNotCancellable
	}

	refund, err := u.hasApprovedPayment(ctx, o.ID)
	if err != nil {
		return CancelResult{}, err
	}

	cancelled, matched, err := u.orders.Cancel(ctx, o.ID, o.Status)
	if err != nil {
		log.Printf("[order][usecase] cancel failed order_id=%s err=%v", o.ID, err)
		return CancelResult{}, upstream(err)
	}
	if !matched {
		log.Printf("[order][usecase] cancel condition failed order_id=%s observed=%s", o.ID, o.Status)
		return CancelResult{}, ErrOrderNotCancellable
	}
	if o.Status == entities.OrderStatusPending {
		u.rejectCompetingOffers(ctx, o.ID, "")
	}
	if refund {
		log.Printf("[order][usecase] cancel requires manual refund order_id=%s", o.ID)
	}
	log.Printf("[order][usecase] cancel success order_id=%s", o.ID)

	u.publish(ctx, entities.EventOrderStatusChanged, cancelled)
	return CancelResult{Order: cancelled, RefundRequired: refund}, nil
}

func (u *OrderUseCase) hasApprovedPayment(ctx context.Context, orderID string) (bool, error) {
	if u.payments == nil {
		return false, nil
	}
	payments, err := u.payments.ListByOrderID(ctx, orderID)
	if err != nil {
		return false, upstream(err)
	}
	for _, p := range payments {
		if p.Status == entities.PaymentStatusApproved {
			return true, nil
		}
	}
	return false, nil
}

// rejectCompetingOffers is best effort: exclusivity is already guaranteed by
// the order write.
func (u *OrderUseCase) rejectCompetingOffers(ctx context.Context, orderID, keepID string) {
	if u.offers == nil {
		return
	}
	n, err := u.offers.RejectPending(ctx, orderID, keepID)
	if err != nil {
		log.Printf("[order][usecase] reject offers failed order_id=%s err=%v", orderID, err)
		return
	}
	if n > 0 {
		log.Printf("[order][usecase] rejected offers order_id=%s count=%d", orderID, n)
	}
}

func (u *OrderUseCase) publish(ctx context.Context, eventType string, o entities.Order) {
	publishOrderEvent(ctx, u.publisher, entities.OrderEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    o.ID,
		Status:     o.Status,
		CookID:     o.CookID,
		OccurredAt: u.now(),
	})
}

// publishOrderEvent runs after the store write succeeded. A failed publish is
// logged only: the state is durable and clients can re-fetch it.
func publishOrderEvent(ctx context.Context, publisher interfaces.IEventPublisher, event entities.OrderEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Printf("[order][events] publish failed order_id=%s type=%s err=%v", event.OrderID, event.Type, err)
	}
}

func sortNewestFirst(orders []entities.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// unavailableOrderError tells a cancelled order apart from one another cook
// already holds.
func unavailableOrderError(o entities.Order) error {
	if o.Status == entities.OrderStatusCancelled {
		return ErrOrderNotPending
	}
	return ErrOrderAlreadyTaken
}
