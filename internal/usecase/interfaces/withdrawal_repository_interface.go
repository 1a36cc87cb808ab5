package interfaces

import (
	"context"

	"chefe_local/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IWithdrawalRepository abstracts DynamoDB persistence for Withdrawal.
type IWithdrawalRepository interface {
	// CreateAndDebit stores w and zeroes the user wallet in one transaction,
	// provided the wallet still holds observedBalance.
	CreateAndDebit(ctx context.Context, w entities.Withdrawal, observedBalance decimal.Decimal) (bool, error)
	GetByID(ctx context.Context, id string) (entities.Withdrawal, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Withdrawal, error)
	MarkPaid(ctx context.Context, id string) (entities.Withdrawal, bool, error)
}
