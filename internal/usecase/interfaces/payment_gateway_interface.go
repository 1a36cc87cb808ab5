package interfaces

import (
	"context"
	"encoding/json"

	"chefe_local/internal/domain/entities"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// Card tokenization is opaque to the service: card fields go straight to the
// provider and only the token comes back. CreatePayment settles a charge for a
// token or a Pix request and returns the provider response for traceability.
// Repeating a CreatePayment with the same idempotencyKey returns the first
// charge instead of creating another.
type IPaymentGateway interface {
	TokenizeCard(ctx context.Context, card entities.CardData) (token string, err error)
	CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
