package request

import "chefe_local/internal/usecase"

type ProfileRequest struct {
	Type      string `json:"type" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	PixKey    string `json:"pix_key"`
	CookLevel string `json:"cook_level"`
}

func (r ProfileRequest) ToCommand() usecase.ProfileCommand {
	return usecase.ProfileCommand{
		Type:      r.Type,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		PixKey:    r.PixKey,
		CookLevel: r.CookLevel,
	}
}

type AvailabilityRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type WithdrawRequest struct {
	PixKey string `json:"pix_key"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
