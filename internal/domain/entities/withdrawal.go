package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending WithdrawalStatus = "pending"
	WithdrawalStatusPaid    WithdrawalStatus = "paid"
)

// Withdrawal is a Pix payout request against a cook's wallet balance.
type Withdrawal struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	PixKey    string
	Status    WithdrawalStatus
	CreatedAt time.Time
	PaidAt    *time.Time
}
