package routes

import (
	"context"
	"log"

	_ "chefe_local/docs" // swagger docs
	"chefe_local/internal/adapter/http/handlers"
	"chefe_local/internal/adapter/http/middleware"
	"chefe_local/internal/adapter/persistence/repository"
	"chefe_local/internal/infrastructure/config"
	"chefe_local/internal/infrastructure/database"
	"chefe_local/internal/infrastructure/messaging"
	"chefe_local/internal/infrastructure/payments"
	"chefe_local/internal/usecase"
	"chefe_local/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Order   *handlers.OrderHandler
	Offer   *handlers.OfferHandler
	User    *handlers.UserHandler
	Wallet  *handlers.WalletHandler
	Chat    *handlers.ChatHandler
	Payment *handlers.PaymentHandler
}

// Run will start the server
func Run(cfg config.Config) {
	ctx := context.Background()

	h, closeDeps, err := getHandlers(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to wire the application: %v", err)
	}
	defer closeDeps()

	router := NewRouter(cfg, h)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRouter mounts the API. Ping, package quotes and swagger are public;
// everything else needs a bearer token.
func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPackageRoutes(v1, h.Order)

	secured := v1.Group("")
	secured.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer))
	addUserRoutes(secured, h.User)
	addOrderRoutes(secured, h.Order, h.Offer, h.Chat, h.Payment)
	addOfferRoutes(secured, h.Offer)
	addPaymentRoutes(secured, h.Payment)
	addWalletRoutes(secured, h.Wallet)

	return router
}

func getHandlers(ctx context.Context, cfg config.Config) (Handlers, func(), error) {
	if cfg.Auth.JWTSecret == "" {
		log.Printf("[startup] JWT_SECRET is empty; every authenticated route will answer 401")
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return Handlers{}, nil, err
	}
	if cfg.DynamoDB.CreateTables {
		if err := database.EnsureTables(ctx, ddb); err != nil {
			return Handlers{}, nil, err
		}
	}

	orderRepo := repository.NewOrderDynamoRepository(ddb)
	offerRepo := repository.NewOfferDynamoRepository(ddb)
	userRepo := repository.NewUserDynamoRepository(ddb)
	withdrawalRepo := repository.NewWithdrawalDynamoRepository(ddb)
	messageRepo := repository.NewMessageDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)

	var (
		publisher  interfaces.IEventPublisher
		subscriber interfaces.IEventSubscriber
		closeDeps  = func() {}
	)
	if cfg.NATS.URL != "" {
		bus, err := messaging.NewNATSEventBus(ctx, messaging.NATSEventBusConfig{
			URL:        cfg.NATS.URL,
			StreamName: cfg.NATS.Stream,
			Timeout:    cfg.NATS.Timeout,
		})
		if err != nil {
			return Handlers{}, nil, err
		}
		publisher, subscriber = bus, bus
		closeDeps = func() {
			if err := bus.Close(); err != nil {
				log.Printf("[startup] nats drain failed err=%v", err)
			}
		}
	} else {
		log.Printf("[startup] NATS_URL not set; realtime events disabled")
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments.MercadoPagoAccessToken, cfg.Payments.Mock)
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	orderUseCase := usecase.NewOrderUseCase(orderRepo, offerRepo, userRepo, paymentRepo, publisher)
	offerUseCase := usecase.NewOfferUseCase(orderRepo, offerRepo, userRepo, publisher)
	userUseCase := usecase.NewUserUseCase(userRepo)
	walletUseCase := usecase.NewWalletUseCase(userRepo, withdrawalRepo)
	chatUseCase := usecase.NewChatUseCase(orderRepo, messageRepo, publisher, subscriber)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orderRepo, paymentGateway)

	return Handlers{
		Order:   handlers.NewOrderHandler(orderUseCase),
		Offer:   handlers.NewOfferHandler(offerUseCase),
		User:    handlers.NewUserHandler(userUseCase),
		Wallet:  handlers.NewWalletHandler(walletUseCase),
		Chat:    handlers.NewChatHandler(chatUseCase),
		Payment: handlers.NewPaymentHandler(paymentUseCase),
	}, closeDeps, nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
