package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Encryption EncryptionConfig
	Orders     OrdersConfig
	Payment    PaymentConfig
	Email      EmailConfig
	Cloudinary CloudinaryConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// EncryptionConfig holds the AES-256 key used for at-rest encryption of
// booster payout keys. Key must be exactly 64 hex characters (32 bytes).
type EncryptionConfig struct {
	Key []byte
}

type OrdersConfig struct {
	// TimeoutHours marks how long an unpaid order stays eligible for refund.
	// Consumed by an external cron, not by this service.
	TimeoutHours int
}

type PaymentConfig struct {
	WebhookSecret string
	APIKey        string
	BaseURL       string
	// CallbackURL is where the gateway posts settlement events, normally the
	// public address of POST /api/v1/webhooks/payments.
	CallbackURL string
	Expiry      time.Duration
}

type EmailConfig struct {
	APIKey  string
	BaseURL string
	From    string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Load reads configuration from the environment and fails fast on anything
// required being absent or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8080"),
			Env:          envOr("APP_ENV", "development"),
			LogLevel:     envOr("LOG_LEVEL", "info"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             os.Getenv("DATABASE_DSN"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
			RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "rankboost",
		},
		Payment: PaymentConfig{
			WebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
			APIKey:        os.Getenv("PAYMENT_API_KEY"),
			BaseURL:       envOr("PAYMENT_BASE_URL", ""),
			CallbackURL:   os.Getenv("PAYMENT_CALLBACK_URL"),
			Expiry:        30 * time.Minute,
		},
		Email: EmailConfig{
			APIKey:  os.Getenv("EMAIL_API_KEY"),
			BaseURL: envOr("EMAIL_BASE_URL", "https://api.resend.com"),
			From:    envOr("EMAIL_FROM", "no-reply@rankboost.gg"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}

	rawKey := os.Getenv("ENCRYPTION_KEY")
	if len(rawKey) != 64 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be 64 hex characters, got %d", len(rawKey))
	}
	key, err := hex.DecodeString(rawKey)
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY is not valid hex: %w", err)
	}
	cfg.Encryption.Key = key

	hours := envOr("ORDER_TIMEOUT_HOURS", "48")
	cfg.Orders.TimeoutHours, err = strconv.Atoi(hours)
	if err != nil || cfg.Orders.TimeoutHours <= 0 {
		return nil, fmt.Errorf("ORDER_TIMEOUT_HOURS must be a positive integer, got %q", hours)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
