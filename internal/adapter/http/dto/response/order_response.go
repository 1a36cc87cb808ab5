package response

import (
	"time"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase"

	"github.com/shopspring/decimal"
)

// amount renders money with exactly two decimals ("17.80").
func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OrderResponse struct {
	ID              string           `json:"id"`
	ClientID        string           `json:"client_id"`
	CookID          string           `json:"cook_id,omitempty"`
	DishDescription string           `json:"dish_description"`
	PeopleCount     int              `json:"people_count"`
	PackageLevel    string           `json:"package_level"`
	TotalPrice      string           `json:"total_price"`
	PlatformFee     string           `json:"platform_fee"`
	CookProfit      string           `json:"cook_profit"`
	PaymentMethod   string           `json:"payment_method"`
	Location        LocationResponse `json:"location"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	AcceptedAt      *time.Time       `json:"accepted_at,omitempty"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	CancelledAt     *time.Time       `json:"cancelled_at,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		ClientID:        o.ClientID,
		CookID:          o.CookID,
		DishDescription: o.DishDescription,
		PeopleCount:     o.PeopleCount,
		PackageLevel:    string(o.PackageLevel),
		TotalPrice:      amount(o.TotalPrice),
		PlatformFee:     amount(o.PlatformFee),
		CookProfit:      amount(o.CookProfit),
		PaymentMethod:   string(o.PaymentMethod),
		Location:        LocationResponse{Latitude: o.Location.Latitude, Longitude: o.Location.Longitude},
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		AcceptedAt:      o.AcceptedAt,
		CompletedAt:     o.CompletedAt,
		CancelledAt:     o.CancelledAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

type CancelOrderResponse struct {
	Order          OrderResponse `json:"order"`
	RefundRequired bool          `json:"refund_required"`
}

func FromCancelResult(r usecase.CancelResult) CancelOrderResponse {
	return CancelOrderResponse{Order: FromOrder(r.Order), RefundRequired: r.RefundRequired}
}

type PackageResponse struct {
	Level       string `json:"level"`
	Price       string `json:"price"`
	PlatformFee string `json:"platform_fee"`
	CookProfit  string `json:"cook_profit"`
}

func FromEconomics(level string, e entities.Economics) PackageResponse {
	return PackageResponse{
		Level:       level,
		Price:       amount(e.Price),
		PlatformFee: amount(e.PlatformFee),
		CookProfit:  amount(e.CookProfit),
	}
}

func FromPackageQuotes(quotes []usecase.PackageQuote) []PackageResponse {
	out := make([]PackageResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromEconomics(string(q.Level), q.Economics))
	}
	return out
}

type OfferResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	CookID    string    `json:"cook_id"`
	Price     string    `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromOffer(o entities.Offer) OfferResponse {
	return OfferResponse{
		ID:        o.ID,
		OrderID:   o.OrderID,
		CookID:    o.CookID,
		Price:     amount(o.Price),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func FromOffers(offers []entities.Offer) []OfferResponse {
	out := make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, FromOffer(o))
	}
	return out
}
