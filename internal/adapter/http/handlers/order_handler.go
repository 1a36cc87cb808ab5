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

// OrderHandler handles package quotes and the order lifecycle.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

// ListPackages godoc
// @Summary      List package tiers with their price split
// @Tags         packages
// @Produce      json
// @Success      200 {array} response.PackageResponse
// @Router       /packages [get]
func (h *OrderHandler) ListPackages(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromPackageQuotes(h.usecase.ListPackages()))
}

// QuotePackage godoc
// @Summary      Quote one package tier
// @Tags         packages
// @Produce      json
// @Param        level path string true "basic, intermediate, professional or premium"
// @Success      200 {object} response.PackageResponse
// @Failure      400 {object} pkg.HTTPError
// @Router       /packages/{level} [get]
func (h *OrderHandler) QuotePackage(c *gin.Context) {
	level := c.Param("level")
	econ, err := h.usecase.QuotePackage(level)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEconomics(level, econ))
}

// CreateOrder godoc
// @Summary      Create a meal request
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload body request.CreateOrderRequest true "Order"
// @Success      201 {object} response.OrderResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), middleware.SessionFrom(c), payload.ToCommand())
	if err != nil {
		log.Printf("[order][handler] create failed err=%v", err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} response.OrderResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetOrder(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ListMyOrders returns the caller's history: placed orders for clients,
// assigned orders for cooks.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Success      200 {array} response.OrderResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.usecase.ListMyOrders(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// ListOpenOrders is the cook radar. Optional query: lat, lng, radius_km.
//
// @Summary      List pending orders for cooks
// @Tags         orders
// @Produce      json
// @Param        lat query number false "Cook latitude"
// @Param        lng query number false "Cook longitude"
// @Param        radius_km query number false "Search radius in km"
// @Success      200 {array} response.OrderResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/open [get]
func (h *OrderHandler) ListOpenOrders(c *gin.Context) {
	var query request.RadarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	orders, err := h.usecase.ListOpenOrders(c.Request.Context(), middleware.SessionFrom(c), query.ToFilter())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// AcceptOrder godoc
// @Summary      Accept a pending order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        payload body request.AcceptOrderRequest false "Agreed price"
// @Success      200 {object} response.OrderResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/accept [post]
func (h *OrderHandler) AcceptOrder(c *gin.Context) {
	var payload request.AcceptOrderRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	orderID := c.Param("id")
	order, err := h.usecase.AcceptOrder(c.Request.Context(), middleware.SessionFrom(c), orderID, payload.ResolveAgreedPrice())
	if err != nil {
		log.Printf("[order][handler] accept failed order_id=%s err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// AdvanceStatus godoc
// @Summary      Advance an order to its next status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        payload body request.AdvanceStatusRequest true "Next status"
// @Success      200 {object} response.OrderResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/status [post]
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	var payload request.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	orderID := c.Param("id")
	order, err := h.usecase.AdvanceStatus(c.Request.Context(), middleware.SessionFrom(c), orderID, payload.ResolveStatus())
	if err != nil {
		log.Printf("[order][handler] advance failed order_id=%s next=%s err=%v", orderID, payload.Status, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

// CancelOrder godoc
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} response.CancelOrderResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	result, err := h.usecase.CancelOrder(c.Request.Context(), middleware.SessionFrom(c), orderID)
	if err != nil {
		log.Printf("[order][handler] cancel failed order_id=%s err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCancelResult(result))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrOrderAlreadyTaken):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_TAKEN", "Another cook already accepted this order", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotPending):
		return pkg.NewDomainErrorSimple("ORDER_NOT_PENDING", "Order is no longer pending", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderPriceChanged):
		return pkg.NewDomainErrorSimple("ORDER_PRICE_CHANGED", "Order price differs from the agreed price", http.StatusConflict)
	case errors.Is(err, usecase.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("ILLEGAL_STATUS_TRANSITION", "Illegal status transition", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotCancellable):
		return pkg.NewDomainErrorSimple("ORDER_NOT_CANCELLABLE", "Order can no longer be cancelled", http.StatusConflict)
	case errors.Is(err, usecase.ErrCookUnavailable):
		return pkg.NewDomainErrorSimple("COOK_UNAVAILABLE", "Turn availability on to accept orders", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidPackageLevel):
		return pkg.NewDomainErrorSimple("INVALID_PACKAGE_LEVEL", "Unknown package level", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	default:
		return mapCommonError(err)
	}
}
