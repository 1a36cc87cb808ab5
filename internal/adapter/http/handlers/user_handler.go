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

type UserHandler struct {
	usecase usecase.IUserUseCase
}

func NewUserHandler(uc usecase.IUserUseCase) *UserHandler {
	return &UserHandler{usecase: uc}
}

// CompleteProfile creates or updates the caller's profile. The account type
// is chosen once.
//
// @Summary      Create or update the caller profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload body request.ProfileRequest true "Profile"
// @Success      200 {object} response.UserResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /users/me [put]
func (h *UserHandler) CompleteProfile(c *gin.Context) {
	var payload request.ProfileRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	user, err := h.usecase.CompleteProfile(c.Request.Context(), middleware.SessionFrom(c), payload.ToCommand())
	if err != nil {
		log.Printf("[user][handler] profile failed err=%v", err)
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

// GetMe godoc
// @Summary      Get the caller profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.UserResponse
// @Failure      401 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.usecase.GetMe(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

// SetAvailability godoc
// @Summary      Turn cook availability on or off
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload body request.AvailabilityRequest true "Availability"
// @Success      200 {object} response.UserResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      401 {object} pkg.HTTPError
// @Failure      403 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Security     Bearer
// @Router       /users/me/availability [patch]
func (h *UserHandler) SetAvailability(c *gin.Context) {
	var payload request.AvailabilityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	user, err := h.usecase.SetAvailability(c.Request.Context(), middleware.SessionFrom(c), *payload.Active)
	if err != nil {
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUserTypeImmutable):
		return pkg.NewDomainErrorSimple("USER_TYPE_IMMUTABLE", "User type cannot be changed", http.StatusConflict)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	default:
		return mapCommonError(err)
	}
}
