package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the normalized gateway outcome.
type PaymentStatus string

const (
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentStatusFromProvider maps a Mercado Pago status to PaymentStatus.
// Anything that is not final is treated as pending.
func PaymentStatusFromProvider(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusRejected
	default:
		return PaymentStatusPending
	}
}

// Payment is a gateway transaction tied to an order.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI order_id-index: order_id
//
// Invariant: ChefNetAmount + PlatformFee == TotalAmount.
// ProviderPayloadRaw keeps the gateway response for reconciliation.
type Payment struct {
	ID                 string
	OrderID            string
	PayerID            string
	Method             PaymentMethod
	TotalAmount        decimal.Decimal
	PlatformFee        decimal.Decimal
	ChefNetAmount      decimal.Decimal
	Status             PaymentStatus
	ProviderStatus     string
	Date               time.Time
	ProviderPayloadRaw json.RawMessage
}

// CardData is forwarded to the gateway for tokenization and never stored.
type CardData struct {
	CardNumber      string
	ExpirationMonth int
	ExpirationYear  int
	SecurityCode    string
	HolderName      string
	DocumentType    string
	DocumentNumber  string
}
