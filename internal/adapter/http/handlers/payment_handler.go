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

// PaymentHandler handles card tokenization and order charges.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// TokenizeCard godoc
// @Summary      Tokenize a card with the gateway
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload body request.CardTokenRequest true "Card"
// @Success      201 {object} response.CardTokenResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      502 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /payments/card-tokens [post]
func (h *PaymentHandler) TokenizeCard(c *gin.Context) {
	var payload request.CardTokenRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	token, err := h.usecase.TokenizeCard(c.Request.Context(), middleware.SessionFrom(c), payload.ToCardData())
	if err != nil {
		log.Printf("[payment][handler] tokenize failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.CardTokenResponse{CardToken: token})
}

// ChargeOrder charges the order total through the gateway.
//
// @Summary      Charge an order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        payload body request.ChargeRequest true "Charge"
// @Success      201 {object} response.PaymentResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Failure      502 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/payments [post]
func (h *PaymentHandler) ChargeOrder(c *gin.Context) {
	orderID := c.Param("id")
	log.Printf("[payment][handler] charge start order_id=%s", orderID)

	var payload request.ChargeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid payload order_id=%s err=%v", orderID, err)
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.ChargeOrder(c.Request.Context(), middleware.SessionFrom(c), orderID, payload.ToCommand())
	if err != nil {
		log.Printf("[payment][handler] charge failed order_id=%s err=%v", orderID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] charge success order_id=%s payment_id=%s status=%s", orderID, created.ID, created.Status)

	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// ListByOrderID godoc
// @Summary      List payments of an order
// @Tags         payments
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {array} response.PaymentResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/payments [get]
func (h *PaymentHandler) ListByOrderID(c *gin.Context) {
	payments, err := h.usecase.ListByOrderID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} response.PaymentResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidChargeRequest), errors.Is(err, usecase.ErrInvalidCard), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrOrderAlreadyPaid):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_PAID", "Order already has an approved payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentInProgress):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_PROGRESS", "Another charge of this order is in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return mapOrderError(err)
	}
}
