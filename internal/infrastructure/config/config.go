package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once at startup from the
// environment (and .env through godotenv/autoload in main).
type Config struct {
	Port    string
	GinMode string

	DynamoDB DynamoDB
	Payments Payments
	NATS     NATS
	Auth     Auth
}

// DynamoDB settings. Local DynamoDB does not validate credentials, but the AWS
// SDK requires them, hence the "local" defaults.
type DynamoDB struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	CreateTables    bool
}

type Payments struct {
	MercadoPagoAccessToken string
	Mock                   bool
}

type NATS struct {
	URL     string
	Stream  string
	Timeout time.Duration
}

type Auth struct {
	JWTSecret string
	Issuer    string
}

func Load() Config {
	return Config{
		Port:    getenvDefault("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),
		DynamoDB: DynamoDB{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			CreateTables:    getenvBool("DYNAMODB_CREATE_TABLES"),
		},
		Payments: Payments{
			MercadoPagoAccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
			Mock:                   getenvBool("PAYMENT_GATEWAY_MOCK") || getenvBool("MERCADOPAGO_MOCK"),
		},
		NATS: NATS{
			URL:     os.Getenv("NATS_URL"),
			Stream:  getenvDefault("NATS_STREAM", "ORDER_EVENTS"),
			Timeout: getenvDuration("NATS_TIMEOUT", 5*time.Second),
		},
		Auth: Auth{
			JWTSecret: os.Getenv("JWT_SECRET"),
			Issuer:    os.Getenv("JWT_ISSUER"),
		},
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
