package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/cardtoken"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

type MercadoPagoGateway struct {
	payments payment.Client
	tokens   cardtoken.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

// NewMercadoPagoGateway builds the SDK clients. With mock set, no call leaves
// the process and every charge is approved.
func NewMercadoPagoGateway(accessToken string, mock bool) (*MercadoPagoGateway, error) {
	if mock {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken, config.WithHTTPClient(newIdempotentRequester(&http.Client{Timeout: requestTimeout})))
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized sandbox=%v", strings.HasPrefix(accessToken, "TEST-"))

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		tokens:   cardtoken.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) TokenizeCard(ctx context.Context, card entities.CardData) (string, error) {
	if g != nil && g.mockMode {
		token := "mock-card-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock tokenize success last4=%s", last4(card.CardNumber))
		return token, nil
	}
	if g == nil || g.tokens == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] tokenize start last4=%s", last4(card.CardNumber))

	resp, err := g.tokens.Create(ctx, cardTokenRequest(card))
	if err != nil {
		log.Printf("[payment][gateway] sdk tokenize failed err=%v", err)
		return "", err
	}
	log.Printf("[payment][gateway] tokenize success last4=%s", last4(card.CardNumber))
	return resp.ID, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock create start idempotency_key=%s payload_len=%d", idempotencyKey, len(requestPayload))

		resp := map[string]any{}
		if len(requestPayload) > 0 && json.Valid(requestPayload) {
			if err := json.Unmarshal(requestPayload, &resp); err != nil {
				resp = map[string]any{"request_payload_raw": string(requestPayload)}
			}
		}

		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		now := time.Now().UTC().Format(time.RFC3339Nano)
		resp["id"] = id
		resp["status"] = "approved"
		resp["status_detail"] = "accredited"
		resp["date_created"] = now
		resp["date_approved"] = now
		delete(resp, "token")

		b, err := json.Marshal(resp)
		if err != nil {
			log.Printf("[payment][gateway] mock response marshal failed err=%v", err)
			return "", "", nil, err
		}

		log.Printf("[payment][gateway] mock create success provider_payment_id=%s provider_status=approved", id)
		return id, "approved", b, nil
	}

	if g == nil || g.payments == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create start idempotency_key=%s payload_len=%d", idempotencyKey, len(requestPayload))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Printf("[payment][gateway] payload unmarshal failed err=%v", err)
		return "", "", nil, err
	}

	resp, err := g.payments.Create(withIdempotencyKey(ctx, idempotencyKey), req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return "", "", nil, err
	}
	log.Printf("[payment][gateway] create success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func cardTokenRequest(card entities.CardData) cardtoken.Request {
	holder := &cardtoken.CardholderRequest{Name: strings.TrimSpace(card.HolderName)}
	if card.DocumentType != "" && card.DocumentNumber != "" {
		holder.Identification = &cardtoken.IdentificationRequest{
			Type:   strings.TrimSpace(card.DocumentType),
			Number: strings.TrimSpace(card.DocumentNumber),
		}
	}
	return cardtoken.Request{
		CardNumber:      strings.ReplaceAll(strings.TrimSpace(card.CardNumber), " ", ""),
		ExpirationMonth: strconv.Itoa(card.ExpirationMonth),
		ExpirationYear:  strconv.Itoa(card.ExpirationYear),
		SecurityCode:    strings.TrimSpace(card.SecurityCode),
		Cardholder:      holder,
	}
}

func last4(number string) string {
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
