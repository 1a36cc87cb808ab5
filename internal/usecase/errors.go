package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a use case wraps exactly one of them so
// transports can map outcomes without knowing every specific error.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
	ErrUpstream     = errors.New("upstream error")
)

func kindError(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

var (
	ErrUnauthenticated = kindError(ErrUnauthorized, "missing session")

	ErrOrderNotFound     = kindError(ErrNotFound, "order not found")
	ErrUserNotFound      = kindError(ErrNotFound, "user not found")
	ErrOfferNotFound     = kindError(ErrNotFound, "offer not found")
	ErrPaymentNotFound   = kindError(ErrNotFound, "payment not found")
	ErrWithdrawNotFound  = kindError(ErrNotFound, "withdrawal not found")
	ErrProfileIncomplete = kindError(ErrNotFound, "profile not completed")

	ErrOrderAlreadyTaken   = kindError(ErrConflict, "order already taken")
	ErrOrderPriceChanged   = kindError(ErrConflict, "order price changed")
	ErrOrderNotPending     = kindError(ErrConflict, "order is not pending")
	ErrIllegalTransition   = kindError(ErrConflict, "illegal status transition")
	ErrOrderNotCancellable = kindError(ErrConflict, "order can no longer be cancelled")
	ErrOrderClosed         = kindError(ErrConflict, "order is closed")
	ErrChatNotOpen         = kindError(ErrConflict, "chat opens once a cook accepts the order")
	ErrOfferNotOpen        = kindError(ErrConflict, "offer is no longer open")
	ErrInsufficientBalance = kindError(ErrConflict, "insufficient wallet balance")
	ErrWalletChanged       = kindError(ErrConflict, "wallet balance changed, retry")
	ErrWithdrawAlreadyPaid = kindError(ErrConflict, "withdrawal already paid")
	ErrUserTypeImmutable   = kindError(ErrConflict, "user type cannot be changed")
	ErrOrderAlreadyPaid    = kindError(ErrConflict, "order already has an approved payment")
	ErrPaymentInProgress   = kindError(ErrConflict, "another charge of this order is in progress")
	ErrCookUnavailable     = kindError(ErrConflict, "cook is not available")

	ErrNotClient           = kindError(ErrUnauthorized, "only clients can do this")
	ErrNotCook             = kindError(ErrUnauthorized, "only cooks can do this")
	ErrNotAssignedCook     = kindError(ErrUnauthorized, "actor is not the assigned cook")
	ErrNotOrderOwner       = kindError(ErrUnauthorized, "actor is not the order owner")
	ErrNotOrderParticipant = kindError(ErrUnauthorized, "actor is not part of this order")
	ErrNotAdmin            = kindError(ErrUnauthorized, "admin only")

	ErrInvalidID            = kindError(ErrValidation, "invalid id")
	ErrInvalidPackageLevel  = kindError(ErrValidation, "invalid package level")
	ErrInvalidPeopleCount   = kindError(ErrValidation, "people count must be positive")
	ErrInvalidDish          = kindError(ErrValidation, "dish description is required")
	ErrInvalidLocation      = kindError(ErrValidation, "invalid location")
	ErrInvalidPaymentMethod = kindError(ErrValidation, "invalid payment method")
	ErrInvalidStatus        = kindError(ErrValidation, "invalid status")
	ErrInvalidAmount        = kindError(ErrValidation, "amount must be positive")
	ErrInvalidMessage       = kindError(ErrValidation, "invalid message")
	ErrInvalidUserType      = kindError(ErrValidation, "invalid user type")
	ErrMissingPixKey        = kindError(ErrValidation, "pix key is required")
	ErrInvalidCard          = kindError(ErrValidation, "invalid card data")
	ErrInvalidChargeRequest = kindError(ErrValidation, "invalid charge request")

	ErrPaymentGatewayNotConfigured = kindError(ErrUpstream, "payment gateway not configured")
)

// upstream tags store and gateway failures while keeping the cause.
func upstream(err error) error {
	if err == nil || errors.Is(err, ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
