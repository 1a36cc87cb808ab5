package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "AWS_REGION", "DYNAMODB_ENDPOINT", "NATS_STREAM", "NATS_TIMEOUT", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DynamoDB.Region != "us-east-1" || cfg.NATS.Stream != "ORDER_EVENTS" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.NATS.Timeout != 5*time.Second || cfg.Payments.Mock {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MERCADOPAGO_MOCK", "yes")
	t.Setenv("NATS_TIMEOUT", "2")
	t.Setenv("DYNAMODB_CREATE_TABLES", "true")
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", " TEST-123 ")

	cfg := Load()
	if cfg.Port != "9090" || !cfg.Payments.Mock || !cfg.DynamoDB.CreateTables {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.NATS.Timeout != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %s", cfg.NATS.Timeout)
	}
	if cfg.Payments.MercadoPagoAccessToken != "TEST-123" {
		t.Fatalf("expected trimmed token, got %q", cfg.Payments.MercadoPagoAccessToken)
	}
}
