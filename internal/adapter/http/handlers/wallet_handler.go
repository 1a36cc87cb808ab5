package handlers

import (
	"errors"
	"log"
	"net/http"

	request "chefe_local/internal/adapter/http/dto/request"
	response "chefe_local/internal/adapter/http/dto/response"
	"chefe_local/internal/adapter/http/middleware"
	"chefe_local/internal/usecase"
	"chefe_local/pkg"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	usecase usecase.IWalletUseCase
}

func NewWalletHandler(uc usecase.IWalletUseCase) *WalletHandler {
	return &WalletHandler{usecase: uc}
}

// GetWallet godoc
// @Summary      Get the cook wallet
// @Tags         wallet
// @Produce      json
// @Success      200 {object} response.WalletResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	user, err := h.usecase.GetWallet(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		appErr := mapWalletError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWallet(user))
}

// RequestWithdraw withdraws the whole balance. pix_key is optional and
// defaults to the key on the profile.
//
// @Summary      Withdraw the whole balance via Pix
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        payload body request.WithdrawRequest false "Pix key override"
// @Success      201 {object} response.WithdrawalResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /wallet/withdrawals [post]
func (h *WalletHandler) RequestWithdraw(c *gin.Context) {
	var payload request.WithdrawRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	w, err := h.usecase.RequestWithdraw(c.Request.Context(), middleware.SessionFrom(c), payload.PixKey)
	if err != nil {
		log.Printf("[wallet][handler] withdraw failed err=%v", err)
		appErr := mapWalletError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromWithdrawal(w))
}

// ListWithdrawals godoc
// @Summary      List the caller's withdrawals
// @Tags         wallet
// @Produce      json
// @Success      200 {array} response.WithdrawalResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /wallet/withdrawals [get]
func (h *WalletHandler) ListWithdrawals(c *gin.Context) {
	ws, err := h.usecase.ListWithdrawals(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		appErr := mapWalletError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWithdrawals(ws))
}

// MarkWithdrawalPaid godoc
// @Summary      Mark a withdrawal as paid
// @Tags         wallet
// @Produce      json
// @Param        id path string true "Withdrawal ID"
// @Success      200 {object} response.WithdrawalResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /withdrawals/{id}/paid [patch]
func (h *WalletHandler) MarkWithdrawalPaid(c *gin.Context) {
	id := c.Param("id")
	w, err := h.usecase.MarkWithdrawalPaid(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		log.Printf("[wallet][handler] mark-paid failed withdrawal_id=%s err=%v", id, err)
		appErr := mapWalletError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromWithdrawal(w))
}

func mapWalletError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInsufficientBalance):
		return pkg.NewDomainErrorSimple("INSUFFICIENT_BALANCE", "Nothing to withdraw", http.StatusConflict)
	case errors.Is(err, usecase.ErrWalletChanged):
		return pkg.NewDomainErrorSimple("WALLET_CHANGED", "Wallet balance changed, try again", http.StatusConflict)
	case errors.Is(err, usecase.ErrMissingPixKey):
		return pkg.NewDomainErrorSimple("MISSING_PIX_KEY", "A Pix key is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWithdrawAlreadyPaid):
		return pkg.NewDomainErrorSimple("WITHDRAWAL_ALREADY_PAID", "Withdrawal already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrWithdrawNotFound):
		return pkg.NewDomainErrorSimple("WITHDRAWAL_NOT_FOUND", "Withdrawal not found", http.StatusNotFound)
	default:
		return mapUserError(err)
	}
}
