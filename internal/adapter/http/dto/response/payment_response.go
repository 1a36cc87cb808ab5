package response

import (
	"encoding/json"
	"time"

	"chefe_local/internal/domain/entities"
)

type PaymentResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	PayerID        string    `json:"payer_id"`
	Method         string    `json:"method"`
	TotalAmount    string    `json:"total_amount"`
	PlatformFee    string    `json:"platform_fee"`
	ChefNetAmount  string    `json:"chef_net_amount"`
	Status         string    `json:"status"`
	ProviderStatus string    `json:"provider_status"`
	Date           time.Time `json:"date"`

	ProviderPayloadRaw string         `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any `json:"provider_payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	res := PaymentResponse{
		ID:                 p.ID,
		OrderID:            p.OrderID,
		PayerID:            p.PayerID,
		Method:             string(p.Method),
		TotalAmount:        amount(p.TotalAmount),
		PlatformFee:        amount(p.PlatformFee),
		ChefNetAmount:      amount(p.ChefNetAmount),
		Status:             string(p.Status),
		ProviderStatus:     p.ProviderStatus,
		Date:               p.Date,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
	if len(p.ProviderPayloadRaw) > 0 {
		var parsed map[string]any
		if err := json.Unmarshal(p.ProviderPayloadRaw, &parsed); err == nil {
			res.ProviderPayload = parsed
		}
	}
	return res
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}

type CardTokenResponse struct {
	CardToken string `json:"card_token"`
}
