package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"chefe_local/internal/domain/entities"
	mock_interfaces "chefe_local/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var (
	clientSession = entities.Session{UserID: "client-1"}
	cookSession   = entities.Session{UserID: "cook-1"}
)

func pendingOrder() entities.Order {
	econ, _ := entities.ComputePackageEconomics(entities.PackageBasic)
	return entities.Order{
		ID:              "ord-1",
		ClientID:        "client-1",
		DishDescription: "feijoada",
		PeopleCount:     4,
		PackageLevel:    entities.PackageBasic,
		TotalPrice:      econ.Price,
		PlatformFee:     econ.PlatformFee,
		CookProfit:      econ.CookProfit,
		PaymentMethod:   entities.PaymentMethodPix,
		Status:          entities.OrderStatusPending,
	}
}

func TestPaymentUseCase_ChargeOrder_Validations(t *testing.T) {
	t.Run("anonymous session", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.ChargeOrder(context.Background(), entities.Session{}, "ord-1", ChargeCommand{Method: "pix"})
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("invalid method", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "boleto"})
		if !errors.Is(err, ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})

	t.Run("card without token", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "card", PaymentMethodID: "visa"})
		if !errors.Is(err, ErrInvalidChargeRequest) {
			t.Fatalf("expected ErrInvalidChargeRequest, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewPaymentUseCase(nil, orders, nil)

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix"})
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})
}

func TestPaymentUseCase_ChargeOrder_OrderChecks(t *testing.T) {
	t.Run("order repo returns error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, errors.New("db"))

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix"})
		if !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(entities.Order{}, nil)

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix"})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("payer is not the order client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)

		_, err := uc.ChargeOrder(context.Background(), cookSession, "ord-1", ChargeCommand{Method: "pix"})
		if !errors.Is(err, ErrNotOrderOwner) {
			t.Fatalf("expected ErrNotOrderOwner, got %v", err)
		}
	})

	t.Run("cancelled order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, orders, gateway)

		o := pendingOrder()
		o.Status = entities.OrderStatusCancelled
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix"})
		if !errors.Is(err, ErrOrderClosed) {
			t.Fatalf("expected ErrOrderClosed, got %v", err)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)
		repo.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return([]entities.Payment{{ID: "p-0", Status: entities.PaymentStatusApproved}}, nil)

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix"})
		if !errors.Is(err, ErrOrderAlreadyPaid) {
			t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
		}
	})
}

func TestPaymentUseCase_ChargeOrder_Gateway(t *testing.T) {
	t.Run("amount comes from the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)
		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		uc.now = func() time.Time { return fixed }

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)
		repo.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)
		orders.EXPECT().ReservePayment(gomock.Any(), "ord-1", "ord-1-1", fixed, fixed.Add(paymentLease)).Return(true, nil)
		orders.EXPECT().ReleasePayment(gomock.Any(), "ord-1", "ord-1-1", true).Return(nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), "ord-1-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, payload json.RawMessage) (string, string, json.RawMessage, error) {
			var req map[string]any
			if err := json.Unmarshal(payload, &req); err != nil {
				t.Fatalf("unexpected payload: %v", err)
			}
			if req["transaction_amount"] != 20.0 {
				t.Fatalf("expected transaction_amount 20, got %v", req["transaction_amount"])
			}
			if req["external_reference"] != "ord-1" {
				t.Fatalf("expected external_reference ord-1, got %v", req["external_reference"])
			}
			if req["payment_method_id"] != "pix" {
				t.Fatalf("expected pix, got %v", req["payment_method_id"])
			}
			return "123", "approved", json.RawMessage(`{"id":123,"status":"approved"}`), nil
		})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if p.ID != "123" || p.OrderID != "ord-1" || p.PayerID != "client-1" {
				t.Fatalf("unexpected payment identity: %+v", p)
			}
			if !p.TotalAmount.Equal(decimal.RequireFromString("20")) ||
				!p.PlatformFee.Equal(decimal.RequireFromString("2.20")) ||
				!p.ChefNetAmount.Equal(decimal.RequireFromString("17.80")) {
				t.Fatalf("unexpected amounts: %s %s %s", p.TotalAmount, p.PlatformFee, p.ChefNetAmount)
			}
			if p.Status != entities.PaymentStatusApproved || !p.Date.Equal(fixed) {
				t.Fatalf("unexpected status/date: %s %s", p.Status, p.Date)
			}
			return p, nil
		})

		out, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix", PayerEmail: "c@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ID != "123" {
			t.Fatalf("expected payment 123, got %s", out.ID)
		}
	})

	t.Run("card charge carries token and installments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)
		repo.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)
		orders.EXPECT().ReservePayment(gomock.Any(), "ord-1", "ord-1-1", gomock.Any(), gomock.Any()).Return(true, nil)
		orders.EXPECT().ReleasePayment(gomock.Any(), "ord-1", "ord-1-1", false).Return(nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), "ord-1-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, payload json.RawMessage) (string, string, json.RawMessage, error) {
			var req map[string]any
			_ = json.Unmarshal(payload, &req)
			if req["token"] != "tok-1" || req["payment_method_id"] != "visa" || req["installments"] != 1.0 {
				t.Fatalf("unexpected card fields: %v", req)
			}
			return "124", "in_process", json.RawMessage(`{}`), nil
		})
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			return p, nil
		})

		out, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{
			Method: "card", CardToken: "tok-1", PaymentMethodID: "visa", PayerEmail: "c@example.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != entities.PaymentStatusPending || out.ProviderStatus != "in_process" {
			t.Fatalf("expected pending/in_process, got %s/%s", out.Status, out.ProviderStatus)
		}
	})

	t.Run("gateway bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)
		repo.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)
		orders.EXPECT().ReservePayment(gomock.Any(), "ord-1", "ord-1-1", gomock.Any(), gomock.Any()).Return(true, nil)
		orders.EXPECT().ReleasePayment(gomock.Any(), "ord-1", "ord-1-1", false).Return(nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), "ord-1-1", gomock.Any()).Return("", "", nil, errors.New(`{"status":400,"error":"bad_request"}`))

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix", PayerEmail: "c@example.com"})
		if !errors.Is(err, ErrPaymentGatewayBadRequest) {
			t.Fatalf("expected ErrPaymentGatewayBadRequest, got %v", err)
		}
	})

	t.Run("repository create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)
		repo.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)
		orders.EXPECT().ReservePayment(gomock.Any(), "ord-1", "ord-1-1", gomock.Any(), gomock.Any()).Return(true, nil)
		orders.EXPECT().ReleasePayment(gomock.Any(), "ord-1", "ord-1-1", false).Return(nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), "ord-1-1", gomock.Any()).Return("125", "approved", json.RawMessage(`{}`), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, errors.New("put failed"))

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix", PayerEmail: "c@example.com"})
		if !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})
}

func TestPaymentUseCase_TokenizeCard(t *testing.T) {
	valid := entities.CardData{
		CardNumber:      "5031 4332 1540 6351",
		ExpirationMonth: 11,
		ExpirationYear:  2030,
		SecurityCode:    "123",
		HolderName:      "APRO",
	}

	t.Run("invalid card number", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		card := valid
		card.CardNumber = "1234"
		_, err := uc.TokenizeCard(context.Background(), clientSession, card)
		if !errors.Is(err, ErrInvalidCard) {
			t.Fatalf("expected ErrInvalidCard, got %v", err)
		}
	})

	t.Run("expired card", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		uc.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
		_, err := uc.TokenizeCard(context.Background(), clientSession, valid)
		if !errors.Is(err, ErrInvalidCard) {
			t.Fatalf("expected ErrInvalidCard, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, nil, gateway)
		uc.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

		gateway.EXPECT().TokenizeCard(gomock.Any(), valid).Return("tok-9", nil)

		token, err := uc.TokenizeCard(context.Background(), clientSession, valid)
		if err != nil || token != "tok-9" {
			t.Fatalf("expected tok-9, got %q err=%v", token, err)
		}
	})
}

func TestPaymentUseCase_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Payment{}, nil)

		_, err := uc.GetByID(context.Background(), clientSession, "p-1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("assigned cook can read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewPaymentUseCase(repo, orders, nil)

		o := pendingOrder()
		o.CookID = "cook-1"
		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Payment{ID: "p-1", OrderID: "ord-1", PayerID: "client-1"}, nil)
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)

		p, err := uc.GetByID(context.Background(), cookSession, "p-1")
		if err != nil || p.ID != "p-1" {
			t.Fatalf("expected p-1, got %+v err=%v", p, err)
		}
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewPaymentUseCase(repo, orders, nil)

		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Payment{ID: "p-1", OrderID: "ord-1", PayerID: "client-1"}, nil)
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)

		_, err := uc.GetByID(context.Background(), entities.Session{UserID: "someone"}, "p-1")
		if !errors.Is(err, ErrNotOrderParticipant) {
			t.Fatalf("expected ErrNotOrderParticipant, got %v", err)
		}
	})
}

func TestClassifyGatewayError(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{`{"message":"Customer not found","code":2002}`, ErrPaymentGatewayCustomerNotFound},
		{`{"cause":[{"code":2034}]}`, ErrPaymentGatewayInvalidUsers},
		{`{"status":401,"error":"unauthorized"}`, ErrPaymentGatewayUnauthorized},
		{`{"status":400,"error":"bad_request"}`, ErrPaymentGatewayBadRequest},
		{"connection reset", ErrUpstream},
	}
	for _, tc := range cases {
		if got := classifyGatewayError(errors.New(tc.msg)); !errors.Is(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.msg, tc.want, got)
		}
	}
}

// fakeGateway counts charges and records the idempotency keys it received.
type fakeGateway struct {
	mu       sync.Mutex
	keys     []string
	statuses []string
	delay    time.Duration
}

func (g *fakeGateway) TokenizeCard(context.Context, entities.CardData) (string, error) {
	return "tok", nil
}

func (g *fakeGateway) CreatePayment(_ context.Context, key string, _ json.RawMessage) (string, string, json.RawMessage, error) {
	g.mu.Lock()
	g.keys = append(g.keys, key)
	n := len(g.keys)
	status := "approved"
	if n <= len(g.statuses) {
		status = g.statuses[n-1]
	}
	g.mu.Unlock()
	time.Sleep(g.delay)
	return fmt.Sprintf("mp-%d", n), status, json.RawMessage(`{}`), nil
}

func (g *fakeGateway) calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.keys...)
}

func TestPaymentUseCase_ChargeOrder_ConcurrentChargesPayOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := f.createBasicOrder()
	gw := &fakeGateway{delay: 5 * time.Millisecond}
	uc := NewPaymentUseCase(memPayments{f.store}, memOrders{f.store}, gw)
	cmd := ChargeCommand{Method: "pix", PayerEmail: "c@example.com"}

	const payers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		approved int
	)
	start := make(chan struct{})
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			p, err := uc.ChargeOrder(ctx, clientSession, o.ID, cmd)
			switch {
			case err == nil:
				if p.Status != entities.PaymentStatusApproved {
					t.Errorf("unexpected status %s", p.Status)
				}
				mu.Lock()
				approved++
				mu.Unlock()
			case errors.Is(err, ErrPaymentInProgress), errors.Is(err, ErrOrderAlreadyPaid):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if approved != 1 {
		t.Fatalf("expected exactly one approved charge, got %d", approved)
	}
	if keys := gw.calls(); len(keys) != 1 || keys[0] != o.ID+"-1" {
		t.Fatalf("expected one gateway call keyed %s-1, got %v", o.ID, keys)
	}
	if got := f.store.order(o.ID); got.PaymentState != entities.PaymentStatePaid || got.PaymentAttempt != "" {
		t.Fatalf("expected paid order with no open attempt, got %q/%q", got.PaymentState, got.PaymentAttempt)
	}
	if _, err := uc.ChargeOrder(ctx, clientSession, o.ID, cmd); !errors.Is(err, ErrOrderAlreadyPaid) {
		t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
	}
	if len(gw.calls()) != 1 {
		t.Fatal("a paid order must not reach the gateway again")
	}
}

func TestPaymentUseCase_ChargeOrder_RetryAfterRejection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	o := f.createBasicOrder()
	gw := &fakeGateway{statuses: []string{"rejected"}}
	uc := NewPaymentUseCase(memPayments{f.store}, memOrders{f.store}, gw)
	cmd := ChargeCommand{Method: "pix", PayerEmail: "c@example.com"}

	first, err := uc.ChargeOrder(ctx, clientSession, o.ID, cmd)
	if err != nil || first.Status != entities.PaymentStatusRejected {
		t.Fatalf("expected rejected payment, got %+v err=%v", first, err)
	}
	if got := f.store.order(o.ID); got.PaymentState != entities.PaymentStateNone {
		t.Fatalf("rejection must free the charge slot, got %q", got.PaymentState)
	}
	second, err := uc.ChargeOrder(ctx, clientSession, o.ID, cmd)
	if err != nil || second.Status != entities.PaymentStatusApproved {
		t.Fatalf("expected approved retry, got %+v err=%v", second, err)
	}
	keys := gw.calls()
	if len(keys) != 2 || keys[0] != o.ID+"-1" || keys[1] != o.ID+"-2" {
		t.Fatalf("expected a fresh key per attempt, got %v", keys)
	}
}

func TestPaymentUseCase_ChargeOrder_SlotTaken(t *testing.T) {
	t.Run("another attempt holds the lease", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)

		processing := pendingOrder()
		processing.PaymentState = entities.PaymentStateProcessing
		gomock.InOrder(
			orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil),
			orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(processing, nil),
		)
		repo.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)
		orders.EXPECT().ReservePayment(gomock.Any(), "ord-1", "ord-1-1", gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix", PayerEmail: "c@example.com"})
		if !errors.Is(err, ErrPaymentInProgress) || !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrPaymentInProgress, got %v", err)
		}
	})

	t.Run("order already marked paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(nil, orders, gateway)

		paid := pendingOrder()
		paid.PaymentState = entities.PaymentStatePaid
		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(paid, nil)

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix", PayerEmail: "c@example.com"})
		if !errors.Is(err, ErrOrderAlreadyPaid) {
			t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
		}
	})

	t.Run("reservation store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, orders, gateway)

		orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(pendingOrder(), nil)
		repo.EXPECT().ListByOrderID(gomock.Any(), "ord-1").Return(nil, nil)
		orders.EXPECT().ReservePayment(gomock.Any(), "ord-1", "ord-1-1", gomock.Any(), gomock.Any()).Return(false, errors.New("throttled"))

		_, err := uc.ChargeOrder(context.Background(), clientSession, "ord-1", ChargeCommand{Method: "pix", PayerEmail: "c@example.com"})
		if !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})
}
