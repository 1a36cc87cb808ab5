package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserType string

const (
	UserTypeClient UserType = "client"
	UserTypeCook   UserType = "cook"
)

func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeCook
}

// User is a client or cook account. Type is fixed once the profile is
// completed and WalletBalance never goes below zero.
type User struct {
	ID            string
	Type          UserType
	Name          string
	Email         string
	Phone         string
	WalletBalance decimal.Decimal
	PixKey        string
	CookLevel     PackageLevel
	IsActive      bool
	Rating        float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u User) IsCook() bool   { return u.Type == UserTypeCook }
func (u User) IsClient() bool { return u.Type == UserTypeClient }
