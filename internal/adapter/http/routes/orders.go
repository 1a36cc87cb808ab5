package routes

import (
	"chefe_local/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPackages = "/packages"
	PathUsers    = "/users"
	PathOrders   = "/orders"
	PathOffers   = "/offers"
)

func addPackageRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	packages := rg.Group(PathPackages)
	{
		packages.GET("", orderHandler.ListPackages)
		packages.GET("/:level", orderHandler.QuotePackage)
	}
}

func addUserRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := rg.Group(PathUsers)
	{
		users.PUT("/me", userHandler.CompleteProfile)
		users.GET("/me", userHandler.GetMe)
		users.PATCH("/me/availability", userHandler.SetAvailability)
	}
}

func addOrderRoutes(
	rg *gin.RouterGroup,
	orderHandler *handlers.OrderHandler,
	offerHandler *handlers.OfferHandler,
	chatHandler *handlers.ChatHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListMyOrders)
		orders.GET("/open", orderHandler.ListOpenOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/accept", orderHandler.AcceptOrder)
		orders.POST("/:id/status", orderHandler.AdvanceStatus)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)

		orders.POST("/:id/offers", offerHandler.MakeOffer)
		orders.GET("/:id/offers", offerHandler.ListOffers)

		orders.POST("/:id/messages", chatHandler.SendMessage)
		orders.GET("/:id/messages", chatHandler.ListMessages)
		orders.GET("/:id/events", chatHandler.StreamEvents)

		orders.POST("/:id/payments", paymentHandler.ChargeOrder)
		orders.GET("/:id/payments", paymentHandler.ListByOrderID)
	}
}

func addOfferRoutes(rg *gin.RouterGroup, offerHandler *handlers.OfferHandler) {
	offers := rg.Group(PathOffers)
	{
		offers.POST("/:id/accept", offerHandler.AcceptOffer)
	}
}
