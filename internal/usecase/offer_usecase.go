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

// IOfferUseCase covers the negotiation flow: cooks bid on pending orders and
// the client picks one bid.
type IOfferUseCase interface {
	MakeOffer(ctx context.Context, s entities.Session, orderID string, price decimal.Decimal) (entities.Offer, error)
	ListOffers(ctx context.Context, s entities.Session, orderID string) ([]entities.Offer, error)
	AcceptOffer(ctx context.Context, s entities.Session, offerID string) (entities.Order, error)
}

type OfferUseCase struct {
	orders    interfaces.IOrderRepository
	offers    interfaces.IOfferRepository
	users     interfaces.IUserRepository
	publisher interfaces.IEventPublisher
	now       func() time.Time
}

var _ IOfferUseCase = (*OfferUseCase)(nil)

func NewOfferUseCase(
	orders interfaces.IOrderRepository,
	offers interfaces.IOfferRepository,
	users interfaces.IUserRepository,
	publisher interfaces.IEventPublisher,
) *OfferUseCase {
	return &OfferUseCase{
		orders:    orders,
		offers:    offers,
		users:     users,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *OfferUseCase) MakeOffer(ctx context.Context, s entities.Session, orderID string, price decimal.Decimal) (entities.Offer, error) {
	log.Printf("[offer][usecase] make start order_id=%s cook_id=%s price=%s", orderID, s.UserID, price)
	if !price.IsPositive() {
		return entities.Offer{}, ErrInvalidAmount
	}
	cook, err := loadCook(ctx, u.users, s)
	if err != nil {
		return entities.Offer{}, err
	}
	if !cook.IsActive {
		return entities.Offer{}, ErrCookUnavailable
	}
	o, err := loadOrder(ctx, u.orders, orderID)
	if err != nil {
		return entities.Offer{}, err
	}
	if o.Status != entities.OrderStatusPending || o.CookID != "" {
		return entities.Offer{}, ErrOrderNotPending
	}

	now := u.now()
	offer := entities.Offer{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		CookID:    cook.ID,
		Price:     price.Round(2),
		Status:    entities.OfferStatusSent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := u.offers.CreateForPendingOrder(ctx, offer)
	if err != nil {
		log.Printf("[offer][usecase] make failed order_id=%s err=%v", o.ID, err)
		return entities.Offer{}, upstream(err)
	}
	if !stored {
		log.Printf("[offer][usecase] make lost race order_id=%s cook_id=%s", o.ID, cook.ID)
		return entities.Offer{}, ErrOrderNotPending
	}
	log.Printf("[offer][usecase] make success offer_id=%s order_id=%s", offer.ID, o.ID)
	return offer, nil
}

func (u *OfferUseCase) ListOffers(ctx context.Context, s entities.Session, orderID string) ([]entities.Offer, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	o, err := loadOrder(ctx, u.orders, orderID)
	if err != nil {
		return nil, err
	}
	offers, err := u.offers.ListByOrderID(ctx, o.ID)
	if err != nil {
		return nil, upstream(err)
	}

	if o.ClientID != s.UserID {
		// Cooks only see their own bids.
		own := offers[:0]
		for _, of := range offers {
			if of.CookID == s.UserID {
				own = append(own, of)
			}
		}
		if len(own) == 0 && o.CookID != s.UserID {
			return nil, ErrNotOrderParticipant
		}
		offers = own
	}
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].CreatedAt.Before(offers[j].CreatedAt) })
	return offers, nil
}

func (u *OfferUseCase) AcceptOffer(ctx context.Context, s entities.Session, offerID string) (entities.Order, error) {
	log.Printf("[offer][usecase] accept start offer_id=%s user_id=%s", offerID, s.UserID)
	if err := requireSession(s); err != nil {
		return entities.Order{}, err
	}
	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return entities.Order{}, ErrInvalidID
	}
	offer, err := u.offers.GetByID(ctx, offerID)
	if err != nil {
		return entities.Order{}, upstream(err)
	}
	if offer.ID == "" {
		return entities.Order{}, ErrOfferNotFound
	}
	o, err := loadOrder(ctx, u.orders, offer.OrderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ClientID != s.UserID {
		return entities.Order{}, ErrNotOrderOwner
	}
	if o.Status != entities.OrderStatusPending || o.CookID != "" {
		return entities.Order{}, unavailableOrderError(o)
	}
	if offer.Status != entities.OfferStatusSent {
		return entities.Order{}, ErrOfferNotOpen
	}

	// The bid sets the price; the split is always recomputed here.
	econ := entities.SplitPrice(offer.Price)
	accepted, matched, err := u.orders.AcceptOffer(ctx, offer, econ)
	if err != nil {
		log.Printf("[offer][usecase] accept failed offer_id=%s err=%v", offer.ID, err)
		return entities.Order{}, upstream(err)
	}
	if !matched {
		current, err := loadOrder(ctx, u.orders, offer.OrderID)
		if err != nil {
			return entities.Order{}, err
		}
		log.Printf("[offer][usecase] accept condition failed offer_id=%s order_status=%s", offer.ID, current.Status)
		if current.Status != entities.OrderStatusPending || current.CookID != "" {
			return entities.Order{}, unavailableOrderError(current)
		}
		return entities.Order{}, ErrOfferNotOpen
	}
	log.Printf("[offer][usecase] accept success offer_id=%s order_id=%s cook_id=%s", offer.ID, accepted.ID, accepted.CookID)

	if n, err := u.offers.RejectPending(ctx, accepted.ID, offer.ID); err != nil {
		log.Printf("[offer][usecase] reject competing offers failed order_id=%s err=%v", accepted.ID, err)
	} else if n > 0 {
		log.Printf("[offer][usecase] rejected competing offers order_id=%s count=%d", accepted.ID, n)
	}

	publishOrderEvent(ctx, u.publisher, entities.OrderEvent{
		ID:         uuid.NewString(),
		Type:       entities.EventOrderStatusChanged,
		OrderID:    accepted.ID,
		Status:     accepted.Status,
		CookID:     accepted.CookID,
		OccurredAt: u.now(),
	})
	return accepted, nil
}
