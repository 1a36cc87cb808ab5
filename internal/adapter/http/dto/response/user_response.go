package response

import (
	"time"

	"chefe_local/internal/domain/entities"
)

type UserResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	WalletBalance string    `json:"wallet_balance"`
	PixKey        string    `json:"pix_key,omitempty"`
	CookLevel     string    `json:"cook_level,omitempty"`
	IsActive      bool      `json:"is_active"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Type:          string(u.Type),
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		WalletBalance: amount(u.WalletBalance),
		PixKey:        u.PixKey,
		CookLevel:     string(u.CookLevel),
		IsActive:      u.IsActive,
		Rating:        u.Rating,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type WalletResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
	PixKey  string `json:"pix_key,omitempty"`
}

func FromWallet(u entities.User) WalletResponse {
	return WalletResponse{UserID: u.ID, Balance: amount(u.WalletBalance), PixKey: u.PixKey}
}

type WithdrawalResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Amount    string     `json:"amount"`
	PixKey    string     `json:"pix_key"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func FromWithdrawal(w entities.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Amount:    amount(w.Amount),
		PixKey:    w.PixKey,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		PaidAt:    w.PaidAt,
	}
}

func FromWithdrawals(ws []entities.Withdrawal) []WithdrawalResponse {
	out := make([]WithdrawalResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWithdrawal(w))
	}
	return out
}
