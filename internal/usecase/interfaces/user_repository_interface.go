package interfaces

import (
	"context"

	"chefe_local/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User.
//
// Wallet balances are only changed by IOrderRepository.CompleteAndCredit and
// IWithdrawalRepository.CreateAndDebit.
type IUserRepository interface {
	// SaveProfile creates or updates the profile fields. matched is false when
	// the stored type differs from u.Type.
	SaveProfile(ctx context.Context, u entities.User) (entities.User, bool, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	SetActive(ctx context.Context, id string, active bool) (entities.User, error)
}
