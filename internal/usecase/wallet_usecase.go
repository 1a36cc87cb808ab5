package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// IWalletUseCase exposes the cook wallet and Pix payouts.
//
// The balance is credited only by order completion and zeroed only by a
// withdrawal; both are single transactions in the store.
type IWalletUseCase interface {
	GetWallet(ctx context.Context, s entities.Session) (entities.User, error)
	RequestWithdraw(ctx context.Context, s entities.Session, pixKey string) (entities.Withdrawal, error)
	ListWithdrawals(ctx context.Context, s entities.Session) ([]entities.Withdrawal, error)
	MarkWithdrawalPaid(ctx context.Context, s entities.Session, id string) (entities.Withdrawal, error)
}

type WalletUseCase struct {
	users       interfaces.IUserRepository
	withdrawals interfaces.IWithdrawalRepository
	now         func() time.Time
}

var _ IWalletUseCase = (*WalletUseCase)(nil)

func NewWalletUseCase(users interfaces.IUserRepository, withdrawals interfaces.IWithdrawalRepository) *WalletUseCase {
	return &WalletUseCase{
		users:       users,
		withdrawals: withdrawals,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *WalletUseCase) GetWallet(ctx context.Context, s entities.Session) (entities.User, error) {
	return loadCook(ctx, u.users, s)
}

func (u *WalletUseCase) RequestWithdraw(ctx context.Context, s entities.Session, pixKey string) (entities.Withdrawal, error) {
	log.Printf("[wallet][usecase] withdraw start user_id=%s", s.UserID)
	cook, err := loadCook(ctx, u.users, s)
	if err != nil {
		return entities.Withdrawal{}, err
	}
	pixKey = strings.TrimSpace(pixKey)
	if pixKey == "" {
		pixKey = cook.PixKey
	}
	if pixKey == "" {
		return entities.Withdrawal{}, ErrMissingPixKey
	}
	if !cook.WalletBalance.IsPositive() {
		log.Printf("[wallet][usecase] withdraw rejected user_id=%s balance=%s", cook.ID, cook.WalletBalance)
		return entities.Withdrawal{}, ErrInsufficientBalance
	}

	w := entities.Withdrawal{
		ID:        uuid.NewString(),
		UserID:    cook.ID,
		Amount:    cook.WalletBalance,
		PixKey:    pixKey,
		Status:    entities.WithdrawalStatusPending,
		CreatedAt: u.now(),
	}
	matched, err := u.withdrawals.CreateAndDebit(ctx, w, cook.WalletBalance)
	if err != nil {
		log.Printf("[wallet][usecase] withdraw failed user_id=%s err=%v", cook.ID, err)
		return entities.Withdrawal{}, upstream(err)
	}
	if !matched {
		current, err := loadCook(ctx, u.users, s)
		if err != nil {
			return entities.Withdrawal{}, err
		}
		log.Printf("[wallet][usecase] withdraw condition failed user_id=%s observed=%s current=%s", cook.ID, cook.WalletBalance, current.WalletBalance)
		if !current.WalletBalance.IsPositive() {
			return entities.Withdrawal{}, ErrInsufficientBalance
		}
		return entities.Withdrawal{}, ErrWalletChanged
	}
	log.Printf("[wallet][usecase] withdraw success withdrawal_id=%s user_id=%s amount=%s", w.ID, cook.ID, w.Amount)
	return w, nil
}

func (u *WalletUseCase) ListWithdrawals(ctx context.Context, s entities.Session) ([]entities.Withdrawal, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	items, err := u.withdrawals.ListByUserID(ctx, s.UserID)
	if err != nil {
		return nil, upstream(err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (u *WalletUseCase) MarkWithdrawalPaid(ctx context.Context, s entities.Session, id string) (entities.Withdrawal, error) {
	log.Printf("[wallet][usecase] mark-paid start withdrawal_id=%s", id)
	if err := requireSession(s); err != nil {
		return entities.Withdrawal{}, err
	}
	if !s.Admin {
		return entities.Withdrawal{}, ErrNotAdmin
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Withdrawal{}, ErrInvalidID
	}

	paid, matched, err := u.withdrawals.MarkPaid(ctx, id)
	if err != nil {
		return entities.Withdrawal{}, upstream(err)
	}
	if !matched {
		current, err := u.withdrawals.GetByID(ctx, id)
		if err != nil {
			return entities.Withdrawal{}, upstream(err)
		}
		if current.ID == "" {
			return entities.Withdrawal{}, ErrWithdrawNotFound
		}
		return entities.Withdrawal{}, ErrWithdrawAlreadyPaid
	}
	log.Printf("[wallet][usecase] mark-paid success withdrawal_id=%s", id)
	return paid, nil
}
