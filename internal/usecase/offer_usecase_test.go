package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"chefe_local/internal/domain/entities"
	mock_interfaces "chefe_local/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestOfferUseCase_AcceptOffer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := f.createBasicOrder()
	rival := f.addCook("cook-2")

	mine, err := f.offers.MakeOffer(ctx, cookSession, o.ID, decimal.RequireFromString("50"))
	if err != nil {
		t.Fatalf("make offer: %v", err)
	}
	theirs, err := f.offers.MakeOffer(ctx, rival, o.ID, decimal.RequireFromString("45"))
	if err != nil {
		t.Fatalf("make offer: %v", err)
	}

	if _, err := f.offers.AcceptOffer(ctx, cookSession, mine.ID); !errors.Is(err, ErrNotOrderOwner) {
		t.Fatalf("expected ErrNotOrderOwner, got %v", err)
	}

	accepted, err := f.offers.AcceptOffer(ctx, clientSession, mine.ID)
	if err != nil {
		t.Fatalf("accept offer: %v", err)
	}
	if accepted.CookID != "cook-1" || accepted.Status != entities.OrderStatusAccepted {
		t.Fatalf("unexpected order %+v", accepted)
	}
	if !accepted.TotalPrice.Equal(decimal.RequireFromString("50")) ||
		!accepted.PlatformFee.Equal(decimal.RequireFromString("5.50")) ||
		!accepted.CookProfit.Equal(decimal.RequireFromString("44.50")) {
		t.Fatalf("unexpected economics %s %s %s", accepted.TotalPrice, accepted.PlatformFee, accepted.CookProfit)
	}

	got, _ := memOffers{f.store}.GetByID(ctx, theirs.ID)
	if got.Status != entities.OfferStatusRejected {
		t.Fatalf("expected competing offer rejected, got %s", got.Status)
	}
	if _, err := f.offers.AcceptOffer(ctx, clientSession, theirs.ID); !errors.Is(err, ErrOrderAlreadyTaken) {
		t.Fatalf("expected ErrOrderAlreadyTaken, got %v", err)
	}
	if _, err := f.offers.MakeOffer(ctx, rival, o.ID, decimal.RequireFromString("40")); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending, got %v", err)
	}
}

func TestOfferUseCase_MakeOffer_Rules(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := f.createBasicOrder()

	if _, err := f.offers.MakeOffer(ctx, cookSession, o.ID, decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := f.offers.MakeOffer(ctx, clientSession, o.ID, decimal.NewFromInt(10)); !errors.Is(err, ErrNotCook) {
		t.Fatalf("expected ErrNotCook, got %v", err)
	}
	if _, err := f.offers.MakeOffer(ctx, cookSession, "missing", decimal.NewFromInt(10)); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOfferUseCase_ListOffers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := f.createBasicOrder()
	rival := f.addCook("cook-2")
	_, _ = f.offers.MakeOffer(ctx, cookSession, o.ID, decimal.NewFromInt(30))
	_, _ = f.offers.MakeOffer(ctx, rival, o.ID, decimal.NewFromInt(25))

	all, err := f.offers.ListOffers(ctx, clientSession, o.ID)
	if err != nil || len(all) != 2 {
		t.Fatalf("client should see 2 offers, got %d err=%v", len(all), err)
	}
	own, err := f.offers.ListOffers(ctx, rival, o.ID)
	if err != nil || len(own) != 1 || own[0].CookID != "cook-2" {
		t.Fatalf("cook should see only own offer, got %+v err=%v", own, err)
	}
	stranger := f.addCook("cook-3")
	if _, err := f.offers.ListOffers(ctx, stranger, o.ID); !errors.Is(err, ErrNotOrderParticipant) {
		t.Fatalf("expected ErrNotOrderParticipant, got %v", err)
	}
}

func TestOfferUseCase_MakeOffer_OrderTakenBeforeWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	offers := mock_interfaces.NewMockIOfferRepository(ctrl)
	users := mock_interfaces.NewMockIUserRepository(ctrl)
	uc := NewOfferUseCase(orders, offers, users, nil)

	users.EXPECT().GetByID(gomock.Any(), "cook-1").Return(entities.User{ID: "cook-1", Type: entities.UserTypeCook, IsActive: true}, nil)
	orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{ID: "ord-1", ClientID: "client-1", Status: entities.OrderStatusPending}, nil)
	offers.EXPECT().CreateForPendingOrder(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := uc.MakeOffer(context.Background(), cookSession, "ord-1", decimal.NewFromInt(30))
	if !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending, got %v", err)
	}
}

func TestOfferUseCase_NoOfferLeftOpenAfterAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := f.createBasicOrder()

	bidders := make([]entities.Session, 8)
	for i := range bidders {
		bidders[i] = f.addCook(fmt.Sprintf("bidder-%d", i))
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for _, b := range bidders {
		wg.Add(1)
		go func(s entities.Session) {
			defer wg.Done()
			<-start
			_, err := f.offers.MakeOffer(ctx, s, o.ID, decimal.NewFromInt(25))
			if err != nil && !errors.Is(err, ErrOrderNotPending) {
				t.Errorf("unexpected error: %v", err)
			}
		}(b)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		if _, err := f.orders.AcceptOrder(ctx, cookSession, o.ID, decimal.Zero); err != nil {
			t.Errorf("accept: %v", err)
		}
	}()
	close(start)
	wg.Wait()

	offers, _ := memOffers{f.store}.ListByOrderID(ctx, o.ID)
	for _, of := range offers {
		if of.Status == entities.OfferStatusSent {
			t.Fatalf("offer %s still open on an accepted order", of.ID)
		}
	}
}
