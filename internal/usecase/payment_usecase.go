package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase/interfaces"
)

var (
	ErrPaymentGatewayBadRequest       = kindError(ErrUpstream, "payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = kindError(ErrUpstream, "payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = kindError(ErrUpstream, "payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = kindError(ErrUpstream, "payment gateway customer not found")
)

var (
	cardNumberPattern   = regexp.MustCompile(`^[0-9]{13,19}$`)
	securityCodePattern = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// IPaymentUseCase charges orders through the payment gateway.
//
// The charged amount always comes from the stored order, never from the
// request payload.
type IPaymentUseCase interface {
	TokenizeCard(ctx context.Context, s entities.Session, card entities.CardData) (string, error)
	ChargeOrder(ctx context.Context, s entities.Session, orderID string, cmd ChargeCommand) (entities.Payment, error)
	GetByID(ctx context.Context, s entities.Session, id string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, s entities.Session, orderID string) ([]entities.Payment, error)
}

// paymentLease bounds how long a crashed charge attempt blocks the next one.
const paymentLease = 2 * time.Minute

// ChargeCommand carries what the gateway needs besides the amount.
// CardToken and PaymentMethodID (e.g. "visa") are required for card charges.
type ChargeCommand struct {
	Method          string
	CardToken       string
	PaymentMethodID string
	Installments    int
	PayerEmail      string
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	orders  interfaces.IOrderRepository
	gateway interfaces.IPaymentGateway
	now     func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, orders interfaces.IOrderRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{
		repo:    repo,
		orders:  orders,
		gateway: gateway,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) TokenizeCard(ctx context.Context, s entities.Session, card entities.CardData) (string, error) {
	log.Printf("[payment][usecase] tokenize start user_id=%s", s.UserID)
	if err := requireSession(s); err != nil {
		return "", err
	}
	if err := validateCard(card, u.now()); err != nil {
		return "", err
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured")
		return "", ErrPaymentGatewayNotConfigured
	}

	token, err := u.gateway.TokenizeCard(ctx, card)
	if err != nil {
		log.Printf("[payment][usecase] tokenize failed user_id=%s err=%v", s.UserID, err)
		return "", classifyGatewayError(err)
	}
	log.Printf("[payment][usecase] tokenize success user_id=%s", s.UserID)
	return token, nil
}

func (u *PaymentUseCase) ChargeOrder(ctx context.Context, s entities.Session, orderID string, cmd ChargeCommand) (entities.Payment, error) {
	log.Printf("[payment][usecase] charge start order_id=%s payer_id=%s method=%q", orderID, s.UserID, cmd.Method)
	if err := requireSession(s); err != nil {
		return entities.Payment{}, err
	}
	method := entities.PaymentMethod(strings.ToLower(strings.TrimSpace(cmd.Method)))
	if !method.Valid() {
		return entities.Payment{}, ErrInvalidPaymentMethod
	}
	if method == entities.PaymentMethodCard && (strings.TrimSpace(cmd.CardToken) == "" || strings.TrimSpace(cmd.PaymentMethodID) == "") {
		log.Printf("[payment][usecase] missing card token or payment_method_id order_id=%s", orderID)
		return entities.Payment{}, ErrInvalidChargeRequest
	}
	if cmd.Installments < 0 {
		return entities.Payment{}, ErrInvalidChargeRequest
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured order_id=%s", orderID)
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	o, err := loadOrder(ctx, u.orders, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if o.ClientID != s.UserID {
		return entities.Payment{}, ErrNotOrderOwner
	}
	if o.Status == entities.OrderStatusCancelled {
		return entities.Payment{}, ErrOrderClosed
	}
	if o.PaymentState == entities.PaymentStatePaid {
		log.Printf("[payment][usecase] order already paid order_id=%s", o.ID)
		return entities.Payment{}, ErrOrderAlreadyPaid
	}
	existing, err := u.repo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return entities.Payment{}, upstream(err)
	}
	for _, p := range existing {
		if p.Status == entities.PaymentStatusApproved {
			log.Printf("[payment][usecase] order already paid order_id=%s payment_id=%s", o.ID, p.ID)
			return entities.Payment{}, ErrOrderAlreadyPaid
		}
	}
	log.Printf("[payment][usecase] order loaded order_id=%s status=%s price=%s", o.ID, o.Status, o.TotalPrice)

	payload, err := buildChargePayload(o, method, cmd)
	if err != nil {
		return entities.Payment{}, err
	}

	attempt := chargeAttemptKey(o.ID, len(existing))
	now := u.now()
	reserved, err := u.orders.ReservePayment(ctx, o.ID, attempt, now, now.Add(paymentLease))
	if err != nil {
		log.Printf("[payment][usecase] reserve failed order_id=%s err=%v", o.ID, err)
		return entities.Payment{}, upstream(err)
	}
	if !reserved {
		current, err := loadOrder(ctx, u.orders, o.ID)
		if err != nil {
			return entities.Payment{}, err
		}
		log.Printf("[payment][usecase] charge slot taken order_id=%s payment_state=%s", o.ID, current.PaymentState)
		if current.PaymentState == entities.PaymentStatePaid {
			return entities.Payment{}, ErrOrderAlreadyPaid
		}
		return entities.Payment{}, ErrPaymentInProgress
	}
	paid := false
	defer func() {
		if err := u.orders.ReleasePayment(context.WithoutCancel(ctx), o.ID, attempt, paid); err != nil {
			log.Printf("[payment][usecase] release failed order_id=%s attempt=%s err=%v", o.ID, attempt, err)
		}
	}()

	log.Printf("[payment][usecase] calling payment gateway order_id=%s attempt=%s", o.ID, attempt)
	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, attempt, payload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed order_id=%s err=%v", o.ID, err)
		return entities.Payment{}, classifyGatewayError(err)
	}
	log.Printf("[payment][usecase] payment gateway success order_id=%s provider_payment_id=%s provider_status=%s", o.ID, providerPaymentID, providerStatus)

	econ := o.Economics()
	p := entities.Payment{
		ID:                 providerPaymentID,
		OrderID:            o.ID,
		PayerID:            s.UserID,
		Method:             method,
		TotalAmount:        econ.Price,
		PlatformFee:        econ.PlatformFee,
		ChefNetAmount:      econ.CookProfit,
		Status:             entities.PaymentStatusFromProvider(providerStatus),
		ProviderStatus:     providerStatus,
		Date:               u.now(),
		ProviderPayloadRaw: providerResp,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		// The charge exists at the provider; external_reference lets it be reconciled.
		log.Printf("[payment][usecase] payment repository create failed order_id=%s payment_id=%s err=%v", o.ID, p.ID, err)
		return entities.Payment{}, upstream(err)
	}
	paid = created.Status == entities.PaymentStatusApproved
	log.Printf("[payment][usecase] charge success order_id=%s payment_id=%s status=%s", o.ID, created.ID, created.Status)
	return created, nil
}

// chargeAttemptKey numbers attempts per order. A retry after the provider
// charged but the store write failed reuses the key, so the provider returns
// the same payment.
func chargeAttemptKey(orderID string, stored int) string {
	return fmt.Sprintf("%s-%d", orderID, stored+1)
}

func buildChargePayload(o entities.Order, method entities.PaymentMethod, cmd ChargeCommand) (json.RawMessage, error) {
	req := map[string]any{
		// The source of truth for amount is the order in DB.
		"transaction_amount": o.TotalPrice.InexactFloat64(),
		"description":        fmt.Sprintf("Chefe Local order %s", o.ID),
		"external_reference": o.ID,
	}
	if method == entities.PaymentMethodPix {
		req["payment_method_id"] = "pix"
	} else {
		installments := cmd.Installments
		if installments == 0 {
			installments = 1
		}
		req["payment_method_id"] = strings.TrimSpace(cmd.PaymentMethodID)
		req["token"] = strings.TrimSpace(cmd.CardToken)
		req["installments"] = installments
	}
	payer := map[string]any{}
	if email := strings.TrimSpace(cmd.PayerEmail); email != "" {
		payer["email"] = email
	}
	req["payer"] = payer
	ensurePayerDefaults(req)

	if !hasPayer(req) {
		log.Printf("[payment][usecase] missing payer email order_id=%s", o.ID)
		return nil, ErrInvalidChargeRequest
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func validateCard(card entities.CardData, now time.Time) error {
	number := strings.ReplaceAll(strings.TrimSpace(card.CardNumber), " ", "")
	switch {
	case !cardNumberPattern.MatchString(number):
		return ErrInvalidCard
	case !securityCodePattern.MatchString(strings.TrimSpace(card.SecurityCode)):
		return ErrInvalidCard
	case card.ExpirationMonth < 1 || card.ExpirationMonth > 12:
		return ErrInvalidCard
	case card.ExpirationYear < now.Year() || (card.ExpirationYear == now.Year() && card.ExpirationMonth < int(now.Month())):
		return ErrInvalidCard
	case strings.TrimSpace(card.HolderName) == "":
		return ErrInvalidCard
	}
	return nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, s entities.Session, id string) (entities.Payment, error) {
	if err := requireSession(s); err != nil {
		return entities.Payment{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, upstream(err)
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if p.PayerID == s.UserID || s.Admin {
		return p, nil
	}
	o, err := loadOrder(ctx, u.orders, p.OrderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if !o.IsParticipant(s.UserID) {
		return entities.Payment{}, ErrNotOrderParticipant
	}
	return p, nil
}

func (u *PaymentUseCase) ListByOrderID(ctx context.Context, s entities.Session, orderID string) ([]entities.Payment, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	o, err := loadOrder(ctx, u.orders, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsParticipant(s.UserID) && !s.Admin {
		return nil, ErrNotOrderParticipant
	}
	items, err := u.repo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return nil, upstream(err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email")
}

// ensurePayerDefaults fills the sandbox payer when the request carries none.
func ensurePayerDefaults(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		payer = map[string]any{}
		m["payer"] = payer
	}
	if hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
		payer["email"] = email
	} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
		payer["email"] = "test_user_br@testuser.com"
	}
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return upstream(err)
}
