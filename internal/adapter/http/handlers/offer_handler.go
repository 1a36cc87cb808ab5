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

type OfferHandler struct {
	usecase usecase.IOfferUseCase
}

func NewOfferHandler(uc usecase.IOfferUseCase) *OfferHandler {
	return &OfferHandler{usecase: uc}
}

// MakeOffer godoc
// @Summary      Bid on a pending order
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        payload body request.MakeOfferRequest true "Offer"
// @Success      201 {object} response.OfferResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/offers [post]
func (h *OfferHandler) MakeOffer(c *gin.Context) {
	var payload request.MakeOfferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	orderID := c.Param("id")
	offer, err := h.usecase.MakeOffer(c.Request.Context(), middleware.SessionFrom(c), orderID, payload.Price)
	if err != nil {
		log.Printf("[offer][handler] make failed order_id=%s err=%v", orderID, err)
		appErr := mapOfferError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromOffer(offer))
}

// ListOffers godoc
// @Summary      List offers of an order
// @Tags         offers
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {array} response.OfferResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/offers [get]
func (h *OfferHandler) ListOffers(c *gin.Context) {
	offers, err := h.usecase.ListOffers(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapOfferError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOffers(offers))
}

// AcceptOffer assigns the bidding cook at the offered price and returns the
// updated order.
//
// @Summary      Accept an offer
// @Tags         offers
// @Produce      json
// @Param        id path string true "Offer ID"
// @Success      200 {object} response.OrderResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /offers/{id}/accept [post]
func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	offerID := c.Param("id")
	order, err := h.usecase.AcceptOffer(c.Request.Context(), middleware.SessionFrom(c), offerID)
	if err != nil {
		log.Printf("[offer][handler] accept failed offer_id=%s err=%v", offerID, err)
		appErr := mapOfferError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

func mapOfferError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrOfferNotFound):
		return pkg.NewDomainErrorSimple("OFFER_NOT_FOUND", "Offer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOfferNotOpen):
		return pkg.NewDomainErrorSimple("OFFER_NOT_OPEN", "Offer is no longer open", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotPending), errors.Is(err, usecase.ErrOrderAlreadyTaken):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_TAKEN", "Order is no longer open for offers", http.StatusConflict)
	default:
		return mapOrderError(err)
	}
}
