package config

import (
	"fmt"
	"os"
	"time"
)

// Config is built once at startup and passed explicitly into constructors.
// Request-handling code never reads the environment.
type Config struct {
	HTTPAddr string
	DBDSN    string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	TokenTTL    time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string

	TxLogDir string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		DBDSN:    os.Getenv("DB_DSN"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   getEnv("JWT_ISSUER", "prueba-cvisual"),
		JWTAudience: getEnv("JWT_AUDIENCE", "prueba-cvisual-api"),
		TokenTTL:    time.Hour,

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		TxLogDir: getEnv("TX_LOG_DIR", "logs"),
	}

	for name, v := range map[string]string{
		"DB_DSN":                cfg.DBDSN,
		"JWT_SECRET":            cfg.JWTSecret,
		"STRIPE_SECRET_KEY":     cfg.StripeSecretKey,
		"STRIPE_WEBHOOK_SECRET": cfg.StripeWebhookSecret,
	} {
		if v == "" {
			return nil, fmt.Errorf("config: %s environment variable is required", name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
