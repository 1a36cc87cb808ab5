package routes

import (
	"chefe_local/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments    = "/payments"
	PathWallet      = "/wallet"
	PathWithdrawals = "/withdrawals"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/card-tokens", paymentHandler.TokenizeCard)
		payments.GET("/:id", paymentHandler.GetPayment)
	}
}

func addWalletRoutes(rg *gin.RouterGroup, walletHandler *handlers.WalletHandler) {
	wallet := rg.Group(PathWallet)
	{
		wallet.GET("", walletHandler.GetWallet)
		wallet.POST("/withdrawals", walletHandler.RequestWithdraw)
		wallet.GET("/withdrawals", walletHandler.ListWithdrawals)
	}

	// Payout confirmation by the operations team.
	withdrawals := rg.Group(PathWithdrawals)
	{
		withdrawals.PATCH("/:id/paid", walletHandler.MarkWithdrawalPaid)
	}
}
