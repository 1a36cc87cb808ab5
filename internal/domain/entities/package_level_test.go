package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputePackageEconomics(t *testing.T) {
	cases := []struct {
		level  PackageLevel
		price  string
		fee    string
		profit string
	}{
		{level: PackageBasic, price: "20.00", fee: "2.20", profit: "17.80"},
		{level: PackageIntermediate, price: "35.00", fee: "3.85", profit: "31.15"},
		{level: PackageProfessional, price: "45.00", fee: "4.95", profit: "40.05"},
		{level: PackagePremium, price: "100.00", fee: "11.00", profit: "89.00"},
	}

	for _, tc := range cases {
		t.Run(string(tc.level), func(t *testing.T) {
			econ, err := ComputePackageEconomics(tc.level)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !econ.Price.Equal(decimal.RequireFromString(tc.price)) {
				t.Fatalf("expected price %s, got %s", tc.price, econ.Price)
			}
			if !econ.PlatformFee.Equal(decimal.RequireFromString(tc.fee)) {
				t.Fatalf("expected fee %s, got %s", tc.fee, econ.PlatformFee)
			}
			if !econ.CookProfit.Equal(decimal.RequireFromString(tc.profit)) {
				t.Fatalf("expected profit %s, got %s", tc.profit, econ.CookProfit)
			}
			if !econ.CookProfit.Add(econ.PlatformFee).Equal(econ.Price) {
				t.Fatalf("profit + fee must equal price: %+v", econ)
			}
			if !econ.PlatformFee.Equal(econ.Price.Mul(CommissionRate)) {
				t.Fatalf("fee must be exactly 11%% of price: %+v", econ)
			}
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		_, err := ComputePackageEconomics("gourmet")
		if !errors.Is(err, ErrUnknownPackageLevel) {
			t.Fatalf("expected ErrUnknownPackageLevel, got %v", err)
		}
	})
}

func TestSplitPrice_AlwaysAddsUp(t *testing.T) {
	for _, raw := range []string{"0.01", "9.99", "33.33", "57.10", "123.45", "1000"} {
		econ := SplitPrice(decimal.RequireFromString(raw))
		if !econ.CookProfit.Add(econ.PlatformFee).Equal(econ.Price) {
			t.Fatalf("split of %s does not add up: %+v", raw, econ)
		}
		if econ.PlatformFee.Exponent() < -2 || econ.CookProfit.Exponent() < -2 {
			t.Fatalf("split of %s is not rounded to cents: %+v", raw, econ)
		}
	}
}

func TestParsePackageLevel(t *testing.T) {
	level, err := ParsePackageLevel(" Premium ")
	if err != nil || level != PackagePremium {
		t.Fatalf("expected premium, got %q err=%v", level, err)
	}
	if _, err := ParsePackageLevel(""); !errors.Is(err, ErrUnknownPackageLevel) {
		t.Fatalf("expected ErrUnknownPackageLevel, got %v", err)
	}
}
