package handlers

import (
	"net/http"
	"testing"
	"time"

	"chefe_local/internal/adapter/http/handlers/mocks"
	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestOfferHandler_MakeOffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOfferUseCase(ctrl)
	h := NewOfferHandler(uc)
	r := newRouter(cookSession)
	r.POST("/v1/orders/:id/offers", h.MakeOffer)

	price := decimal.RequireFromString("42.50")
	uc.EXPECT().MakeOffer(gomock.Any(), cookSession, "ord-1", gomock.Any()).
		DoAndReturn(func(_ any, _ entities.Session, orderID string, got decimal.Decimal) (entities.Offer, error) {
			if !got.Equal(price) {
				t.Errorf("expected price %s, got %s", price, got)
			}
			return entities.Offer{ID: "of-1", OrderID: orderID, CookID: "cook-1", Price: got, Status: entities.OfferStatusSent, CreatedAt: time.Now().UTC()}, nil
		})
	uc.EXPECT().MakeOffer(gomock.Any(), cookSession, "ord-2", gomock.Any()).Return(entities.Offer{}, usecase.ErrOrderNotPending)

	w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/offers", `{"price":"42.5"}`)
	if w.Code != http.StatusCreated || decodeBody(t, w)["price"] != "42.50" {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-2/offers", `{"price":10}`), http.StatusConflict, "ORDER_ALREADY_TAKEN")
	expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/offers", `{"price":"abc"}`), http.StatusBadRequest, "INVALID_REQUEST")
}

func TestOfferHandler_AcceptOffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOfferUseCase(ctrl)
	h := NewOfferHandler(uc)
	r := newRouter(clientSession)
	r.POST("/v1/offers/:id/accept", h.AcceptOffer)
	r.GET("/v1/orders/:id/offers", h.ListOffers)

	order := basicOrder(entities.OrderStatusAccepted)
	order.CookID = "cook-1"
	order.TotalPrice = decimal.RequireFromString("50")
	order.PlatformFee = decimal.RequireFromString("5.5")
	order.CookProfit = decimal.RequireFromString("44.5")
	uc.EXPECT().AcceptOffer(gomock.Any(), clientSession, "of-1").Return(order, nil)
	uc.EXPECT().AcceptOffer(gomock.Any(), clientSession, "of-2").Return(entities.Order{}, usecase.ErrOfferNotOpen)
	uc.EXPECT().AcceptOffer(gomock.Any(), clientSession, "of-3").Return(entities.Order{}, usecase.ErrOfferNotFound)
	uc.EXPECT().ListOffers(gomock.Any(), clientSession, "ord-1").Return([]entities.Offer{{ID: "of-1", Price: decimal.RequireFromString("50")}}, nil)

	w := doRequest(r, http.MethodPost, "/v1/offers/of-1/accept", "")
	body := decodeBody(t, w)
	if w.Code != http.StatusOK || body["total_price"] != "50.00" || body["cook_profit"] != "44.50" {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	expectCode(t, doRequest(r, http.MethodPost, "/v1/offers/of-2/accept", ""), http.StatusConflict, "OFFER_NOT_OPEN")
	expectCode(t, doRequest(r, http.MethodPost, "/v1/offers/of-3/accept", ""), http.StatusNotFound, "OFFER_NOT_FOUND")

	w = doRequest(r, http.MethodGet, "/v1/orders/ord-1/offers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
