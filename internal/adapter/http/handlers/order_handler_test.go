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

func basicOrder(status entities.OrderStatus) entities.Order {
	now := time.Now().UTC()
	econ, _ := entities.ComputePackageEconomics(entities.PackageBasic)
	return entities.Order{
		ID:              "ord-1",
		ClientID:        "client-1",
		DishDescription: "strogonoff",
		PeopleCount:     4,
		PackageLevel:    entities.PackageBasic,
		TotalPrice:      econ.Price,
		PlatformFee:     econ.PlatformFee,
		CookProfit:      econ.CookProfit,
		PaymentMethod:   entities.PaymentMethodPix,
		Location:        entities.Location{Latitude: -23.55, Longitude: -46.63},
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestOrderHandler_Packages(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)

	r := newRouter(entities.Session{})
	r.GET("/v1/packages", h.ListPackages)
	r.GET("/v1/packages/:level", h.QuotePackage)

	basic, _ := entities.ComputePackageEconomics(entities.PackageBasic)
	uc.EXPECT().ListPackages().Return([]usecase.PackageQuote{{Level: entities.PackageBasic, Economics: basic}})
	uc.EXPECT().QuotePackage("basic").Return(basic, nil)
	uc.EXPECT().QuotePackage("gourmet").Return(entities.Economics{}, usecase.ErrInvalidPackageLevel)

	w := doRequest(r, http.MethodGet, "/v1/packages", "")
	if w.Code != http.StatusOK || w.Body.String() != `[{"level":"basic","price":"20.00","platform_fee":"2.20","cook_profit":"17.80"}]` {
		t.Fatalf("unexpected list response %d %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/v1/packages/basic", "")
	if w.Code != http.StatusOK || decodeBody(t, w)["cook_profit"] != "17.80" {
		t.Fatalf("unexpected quote response %d %s", w.Code, w.Body.String())
	}

	expectCode(t, doRequest(r, http.MethodGet, "/v1/packages/gourmet", ""), http.StatusBadRequest, "INVALID_PACKAGE_LEVEL")
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewOrderHandler(mocks.NewMockIOrderUseCase(ctrl))
		r := newRouter(clientSession)
		r.POST("/v1/orders", h.CreateOrder)

		expectCode(t, doRequest(r, http.MethodPost, "/v1/orders", "{"), http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewOrderHandler(mocks.NewMockIOrderUseCase(ctrl))
		r := newRouter(clientSession)
		r.POST("/v1/orders", h.CreateOrder)

		expectCode(t, doRequest(r, http.MethodPost, "/v1/orders", `{"people_count":4}`), http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("forwards session and command", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newRouter(clientSession)
		r.POST("/v1/orders", h.CreateOrder)

		want := usecase.CreateOrderCommand{
			DishDescription: "strogonoff",
			PeopleCount:     4,
			PackageLevel:    "basic",
			Location:        entities.Location{Latitude: -23.55, Longitude: -46.63},
			PaymentMethod:   "pix",
		}
		uc.EXPECT().CreateOrder(gomock.Any(), clientSession, want).Return(basicOrder(entities.OrderStatusPending), nil)

		w := doRequest(r, http.MethodPost, "/v1/orders",
			`{"dish_description":"strogonoff","people_count":4,"package_level":"basic","latitude":-23.55,"longitude":-46.63,"payment_method":"pix","total_price":1}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["total_price"] != "20.00" || body["status"] != "pending" {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("not a client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newRouter(cookSession)
		r.POST("/v1/orders", h.CreateOrder)

		uc.EXPECT().CreateOrder(gomock.Any(), cookSession, gomock.Any()).Return(entities.Order{}, usecase.ErrNotClient)

		w := doRequest(r, http.MethodPost, "/v1/orders", `{"dish_description":"x","people_count":1,"package_level":"basic"}`)
		expectCode(t, w, http.StatusForbidden, "FORBIDDEN")
	})
}

func TestOrderHandler_ListOpenOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)
	r := newRouter(cookSession)
	r.GET("/v1/orders/open", h.ListOpenOrders)

	uc.EXPECT().ListOpenOrders(gomock.Any(), cookSession, usecase.RadarFilter{
		Center:   entities.Location{Latitude: -23.5, Longitude: -46.6},
		RadiusKm: 3,
	}).Return([]entities.Order{basicOrder(entities.OrderStatusPending)}, nil)
	uc.EXPECT().ListOpenOrders(gomock.Any(), cookSession, usecase.RadarFilter{}).Return(nil, nil)

	w := doRequest(r, http.MethodGet, "/v1/orders/open?lat=-23.5&lng=-46.6&radius_km=3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/v1/orders/open", "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
	}

	expectCode(t, doRequest(r, http.MethodGet, "/v1/orders/open?lat=north", ""), http.StatusBadRequest, "INVALID_REQUEST")
}

func TestOrderHandler_AcceptOrder(t *testing.T) {
	t.Run("empty body accepts at the stored price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newRouter(cookSession)
		r.POST("/v1/orders/:id/accept", h.AcceptOrder)

		accepted := basicOrder(entities.OrderStatusAccepted)
		accepted.CookID = "cook-1"
		uc.EXPECT().AcceptOrder(gomock.Any(), cookSession, "ord-1", decimal.Zero).Return(accepted, nil)

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/accept", "")
		if w.Code != http.StatusOK || decodeBody(t, w)["cook_id"] != "cook-1" {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("lost race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newRouter(cookSession)
		r.POST("/v1/orders/:id/accept", h.AcceptOrder)

		uc.EXPECT().AcceptOrder(gomock.Any(), cookSession, "ord-1", gomock.Any()).
			DoAndReturn(func(_ any, _ entities.Session, _ string, price decimal.Decimal) (entities.Order, error) {
				if !price.Equal(decimal.RequireFromString("20")) {
					t.Errorf("expected agreed price 20, got %s", price)
				}
				return entities.Order{}, usecase.ErrOrderAlreadyTaken
			})

		w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/accept", `{"agreed_price":"20.00"}`)
		expectCode(t, w, http.StatusConflict, "ORDER_ALREADY_TAKEN")
	})

	t.Run("price changed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newRouter(cookSession)
		r.POST("/v1/orders/:id/accept", h.AcceptOrder)

		uc.EXPECT().AcceptOrder(gomock.Any(), cookSession, "ord-1", gomock.Any()).Return(entities.Order{}, usecase.ErrOrderPriceChanged)

		expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/accept", `{"agreed_price":19}`), http.StatusConflict, "ORDER_PRICE_CHANGED")
	})

	t.Run("cancelled order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newRouter(cookSession)
		r.POST("/v1/orders/:id/accept", h.AcceptOrder)

		uc.EXPECT().AcceptOrder(gomock.Any(), cookSession, "ord-1", decimal.Zero).Return(entities.Order{}, usecase.ErrOrderNotPending)

		expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/accept", ""), http.StatusConflict, "ORDER_NOT_PENDING")
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)
		r := newRouter(cookSession)
		r.POST("/v1/orders/:id/accept", h.AcceptOrder)

		uc.EXPECT().AcceptOrder(gomock.Any(), cookSession, "missing", decimal.Zero).Return(entities.Order{}, usecase.ErrOrderNotFound)

		expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/missing/accept", ""), http.StatusNotFound, "ORDER_NOT_FOUND")
	})
}

func TestOrderHandler_AdvanceStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)
	r := newRouter(cookSession)
	r.POST("/v1/orders/:id/status", h.AdvanceStatus)

	arrived := basicOrder(entities.OrderStatusArrived)
	uc.EXPECT().AdvanceStatus(gomock.Any(), cookSession, "ord-1", entities.OrderStatusArrived).Return(arrived, nil)
	uc.EXPECT().AdvanceStatus(gomock.Any(), cookSession, "ord-1", entities.OrderStatusCompleted).Return(entities.Order{}, usecase.ErrIllegalTransition)
	uc.EXPECT().AdvanceStatus(gomock.Any(), cookSession, "ord-1", entities.OrderStatusCooking).Return(entities.Order{}, usecase.ErrNotAssignedCook)

	w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/status", `{"status":"ARRIVED"}`)
	if w.Code != http.StatusOK || decodeBody(t, w)["status"] != "arrived" {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
	expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/status", `{"status":"completed"}`), http.StatusConflict, "ILLEGAL_STATUS_TRANSITION")
	expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/status", `{"status":"cooking"}`), http.StatusForbidden, "FORBIDDEN")
	expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-1/status", `{}`), http.StatusBadRequest, "INVALID_REQUEST")
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)
	r := newRouter(clientSession)
	r.POST("/v1/orders/:id/cancel", h.CancelOrder)

	cancelled := basicOrder(entities.OrderStatusCancelled)
	uc.EXPECT().CancelOrder(gomock.Any(), clientSession, "ord-1").Return(usecase.CancelResult{Order: cancelled, RefundRequired: true}, nil)
	uc.EXPECT().CancelOrder(gomock.Any(), clientSession, "ord-2").Return(usecase.CancelResult{}, usecase.ErrOrderNotCancellable)

	w := doRequest(r, http.MethodPost, "/v1/orders/ord-1/cancel", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["refund_required"] != true {
		t.Fatalf("expected refund_required, got %s", w.Body.String())
	}
	expectCode(t, doRequest(r, http.MethodPost, "/v1/orders/ord-2/cancel", ""), http.StatusConflict, "ORDER_NOT_CANCELLABLE")
}

func TestOrderHandler_GetAndListMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)
	r := newRouter(clientSession)
	r.GET("/v1/orders", h.ListMyOrders)
	r.GET("/v1/orders/:id", h.GetOrder)

	uc.EXPECT().ListMyOrders(gomock.Any(), clientSession).Return([]entities.Order{basicOrder(entities.OrderStatusPending)}, nil)
	uc.EXPECT().GetOrder(gomock.Any(), clientSession, "ord-9").Return(entities.Order{}, usecase.ErrNotOrderParticipant)

	w := doRequest(r, http.MethodGet, "/v1/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	expectCode(t, doRequest(r, http.MethodGet, "/v1/orders/ord-9", ""), http.StatusForbidden, "FORBIDDEN")
}
