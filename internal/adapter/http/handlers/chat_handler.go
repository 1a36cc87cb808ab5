package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	request "chefe_local/internal/adapter/http/dto/request"
	response "chefe_local/internal/adapter/http/dto/response"
	"chefe_local/internal/adapter/http/middleware"
	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase"
	"chefe_local/pkg"

	"github.com/gin-gonic/gin"
)

const (
	defaultHeartbeat = 15 * time.Second
	eventBuffer      = 32
)

type ChatHandler struct {
	usecase   usecase.IChatUseCase
	heartbeat time.Duration
}

func NewChatHandler(uc usecase.IChatUseCase) *ChatHandler {
	return &ChatHandler{usecase: uc, heartbeat: defaultHeartbeat}
}

// SendMessage godoc
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        payload body request.SendMessageRequest true "Message"
// @Success      201 {object} response.MessageResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var payload request.SendMessageRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	orderID := c.Param("id")
	m, err := h.usecase.SendMessage(c.Request.Context(), middleware.SessionFrom(c), orderID, payload.Content)
	if err != nil {
		log.Printf("[chat][handler] send failed order_id=%s err=%v", orderID, err)
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromMessage(m))
}

// ListMessages godoc
// @Summary      List chat messages
// @Tags         chat
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {array} response.MessageResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	msgs, err := h.usecase.ListMessages(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromMessages(msgs))
}

// StreamEvents pushes the order's status and chat events as server-sent
// events until the client disconnects. Every connection has its own ordered
// consumer, so a slow client only holds back its own delivery.
//
// @Summary      Stream order and chat events
// @Tags         chat
// @Produce      text/event-stream
// @Param        id path string true "Order ID"
// @Success      200 {object} response.EventResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /orders/{id}/events [get]
func (h *ChatHandler) StreamEvents(c *gin.Context) {
	orderID := c.Param("id")
	ctx := c.Request.Context()
	events := make(chan entities.OrderEvent, eventBuffer)

	cancel, err := h.usecase.Subscribe(ctx, middleware.SessionFrom(c), orderID, func(ev entities.OrderEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
			log.Printf("[chat][handler] stream gone before delivery order_id=%s event_id=%s", orderID, ev.ID)
		}
	})
	if err != nil {
		appErr := mapChatError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	defer cancel()
	log.Printf("[chat][handler] stream open order_id=%s", orderID)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		// Queued events go out before a heartbeat or a disconnect is noticed.
		select {
		case ev := <-events:
			c.SSEvent(ev.Type, response.FromEvent(ev))
			return true
		default:
		}
		select {
		case ev := <-events:
			c.SSEvent(ev.Type, response.FromEvent(ev))
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		case <-ctx.Done():
			return false
		}
	})
	log.Printf("[chat][handler] stream closed order_id=%s", orderID)
}

func mapChatError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrChatNotOpen):
		return pkg.NewDomainErrorSimple("CHAT_NOT_OPEN", "Chat opens once a cook accepts the order", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderClosed):
		return pkg.NewDomainErrorSimple("ORDER_CLOSED", "Order is closed", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidMessage):
		return pkg.NewDomainErrorSimple("INVALID_MESSAGE", "Message must be non-empty text", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotOrderParticipant):
		return pkg.NewDomainErrorSimple("NOT_ORDER_PARTICIPANT", "Only the client and the assigned cook can use this chat", http.StatusForbidden)
	default:
		return mapOrderError(err)
	}
}
