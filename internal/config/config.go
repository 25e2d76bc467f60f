// Package config loads the process configuration from environment variables.
//
// Every integration is optional: a missing Stripe key disables the hosted
// payment redirect, missing SMTP credentials disable confirmation mail and a
// missing Redis address falls back to the in-memory session store. The
// process never refuses to start because an integration is unconfigured.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DefaultAdminPassword is used when ADMIN_PASSWORD is unset. main() logs a
// warning when this fallback is active.
const DefaultAdminPassword = "admin123"

type Config struct {
	Port         string `envconfig:"PORT" default:"5000"`
	BaseURL      string `envconfig:"BASE_URL" default:"http://localhost:5000"`
	DBPath       string `envconfig:"DB_PATH" default:"orders.db"`
	ProductsPath string `envconfig:"PRODUCTS_PATH" default:"products.json"`

	// Session store. Empty RedisAddr selects the in-memory store.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	SessionCookie string `envconfig:"SESSION_COOKIE" default:"shop_session"`

	// Payment handoff.
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
	Currency        string `envconfig:"CURRENCY" default:"inr"`

	// Confirmation mail.
	EmailUser string `envconfig:"EMAIL_USER"`
	EmailPass string `envconfig:"EMAIL_PASS"`
	SMTPHost  string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort  int    `envconfig:"SMTP_PORT" default:"465"`

	AdminPassword  string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	ShopName       string `envconfig:"SHOP_NAME" default:"Cracker Shop"`
	WhatsappNumber string `envconfig:"WHATSAPP_NUMBER" default:"91XXXXXXXXXX"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: process environment: %w", err)
	}
	return &cfg, nil
}

// PaymentEnabled reports whether the hosted payment redirect is available.
func (c *Config) PaymentEnabled() bool { return c.StripeSecretKey != "" }

// MailEnabled reports whether the SMTP transport is configured.
func (c *Config) MailEnabled() bool { return c.EmailUser != "" && c.EmailPass != "" }
