package request

import (
	"strings"

	"chefe_local/internal/domain/entities"
	"chefe_local/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the client's meal request. Prices are never read from
// the payload; they come from the package level.
type CreateOrderRequest struct {
	DishDescription string  `json:"dish_description" binding:"required"`
	PeopleCount     int     `json:"people_count" binding:"required"`
	PackageLevel    string  `json:"package_level" binding:"required"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	PaymentMethod   string  `json:"payment_method"`
}

func (r CreateOrderRequest) ToCommand() usecase.CreateOrderCommand {
	return usecase.CreateOrderCommand{
		DishDescription: r.DishDescription,
		PeopleCount:     r.PeopleCount,
		PackageLevel:    r.PackageLevel,
		Location:        entities.Location{Latitude: r.Latitude, Longitude: r.Longitude},
		PaymentMethod:   r.PaymentMethod,
	}
}

// RadarQuery is read from the query string of GET /orders/open. Without lat
// and lng the radius is ignored.
type RadarQuery struct {
	Latitude  *float64 `form:"lat"`
	Longitude *float64 `form:"lng"`
	RadiusKm  float64  `form:"radius_km"`
}

func (q RadarQuery) ToFilter() usecase.RadarFilter {
	if q.Latitude == nil || q.Longitude == nil {
		return usecase.RadarFilter{}
	}
	return usecase.RadarFilter{
		Center:   entities.Location{Latitude: *q.Latitude, Longitude: *q.Longitude},
		RadiusKm: q.RadiusKm,
	}
}

// AcceptOrderRequest optionally pins the price the cook saw. The body may be
// empty.
type AcceptOrderRequest struct {
	AgreedPrice *decimal.Decimal `json:"agreed_price"`
}

func (r AcceptOrderRequest) ResolveAgreedPrice() decimal.Decimal {
	if r.AgreedPrice == nil {
		return decimal.Zero
	}
	return *r.AgreedPrice
}

type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r AdvanceStatusRequest) ResolveStatus() entities.OrderStatus {
	return entities.OrderStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

type MakeOfferRequest struct {
	Price decimal.Decimal `json:"price"`
}
