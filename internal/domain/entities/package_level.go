package entities

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrUnknownPackageLevel = errors.New("unknown package level")

// PackageLevel is the service tier a client picks when requesting a meal.
type PackageLevel string

const (
	PackageBasic        PackageLevel = "basic"
	PackageIntermediate PackageLevel = "intermediate"
	PackageProfessional PackageLevel = "professional"
	PackagePremium      PackageLevel = "premium"
)

// CommissionRate is the platform share of every order price.
var CommissionRate = decimal.RequireFromString("0.11")

var packagePrices = map[PackageLevel]decimal.Decimal{
	PackageBasic:        decimal.RequireFromString("20.00"),
	PackageIntermediate: decimal.RequireFromString("35.00"),
	PackageProfessional: decimal.RequireFromString("45.00"),
	PackagePremium:      decimal.RequireFromString("100.00"),
}

// PackageLevels lists the tiers from cheapest to most expensive.
var PackageLevels = []PackageLevel{PackageBasic, PackageIntermediate, PackageProfessional, PackagePremium}

func ParsePackageLevel(raw string) (PackageLevel, error) {
	level := PackageLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := packagePrices[level]; !ok {
		return "", ErrUnknownPackageLevel
	}
	return level, nil
}

// Economics is the price split of an order.
//
// Invariant: CookProfit + PlatformFee == Price.
type Economics struct {
	Price       decimal.Decimal
	PlatformFee decimal.Decimal
	CookProfit  decimal.Decimal
}

// ComputePackageEconomics derives the price split of a package tier. It is the
// only source of prices for new orders.
func ComputePackageEconomics(level PackageLevel) (Economics, error) {
	price, ok := packagePrices[level]
	if !ok {
		return Economics{}, ErrUnknownPackageLevel
	}
	return SplitPrice(price), nil
}

// SplitPrice applies the commission to an arbitrary price, rounded to cents.
// The profit is computed by subtraction so the split always adds up.
func SplitPrice(price decimal.Decimal) Economics {
	price = price.Round(2)
	fee := price.Mul(CommissionRate).Round(2)
	return Economics{
		Price:       price,
		PlatformFee: fee,
		CookProfit:  price.Sub(fee),
	}
}
