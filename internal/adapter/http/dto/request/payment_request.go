package request

import (
	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase"
)

// CardTokenRequest carries raw card data straight to the gateway. It is never
// logged or stored.
type CardTokenRequest struct {
	CardNumber      string `json:"card_number" binding:"required"`
	ExpirationMonth int    `json:"expiration_month" binding:"required"`
	ExpirationYear  int    `json:"expiration_year" binding:"required"`
	SecurityCode    string `json:"security_code" binding:"required"`
	HolderName      string `json:"holder_name" binding:"required"`
	DocumentType    string `json:"document_type"`
	DocumentNumber  string `json:"document_number"`
}

func (r CardTokenRequest) ToCardData() entities.CardData {
	return entities.CardData{
		CardNumber:      r.CardNumber,
		ExpirationMonth: r.ExpirationMonth,
		ExpirationYear:  r.ExpirationYear,
		SecurityCode:    r.SecurityCode,
		HolderName:      r.HolderName,
		DocumentType:    r.DocumentType,
		DocumentNumber:  r.DocumentNumber,
	}
}

// ChargeRequest is the payload of POST /orders/:id/payments. The amount is
// always the order total.
type ChargeRequest struct {
	Method          string `json:"method" binding:"required"`
	CardToken       string `json:"card_token"`
	PaymentMethodID string `json:"payment_method_id"`
	Installments    int    `json:"installments"`
	PayerEmail      string `json:"payer_email"`
}

func (r ChargeRequest) ToCommand() usecase.ChargeCommand {
	return usecase.ChargeCommand{
		Method:          r.Method,
		CardToken:       r.CardToken,
		PaymentMethodID: r.PaymentMethodID,
		Installments:    r.Installments,
		PayerEmail:      r.PayerEmail,
	}
}
