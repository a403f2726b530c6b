package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// Config is the configuration of the HTTP API.
type Config struct {
	Port          string
	DatabaseURL   string
	RedisAddress  string
	RedisPassword string

	JWTPrivateKey *rsa.PrivateKey
	JWTPublicKey  *rsa.PublicKey
	TokenTTL      time.Duration

	CORSAllowedOrigins []string
	WebhookSecret      string

	// PartialCredit enables adjacent trait values in scoring when above 0.
	PartialCredit float64

	LogJSON  bool
	LogDebug bool
}

// newViper reads configuration from the environment only.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
	return v
}

func Load() (*Config, error) {
	v := newViper()
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("PRIVATE_KEY_PATH", "/etc/certs/private.pem")
	v.SetDefault("PUBLIC_KEY_PATH", "/etc/certs/public.pem")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MATCHING_PARTIAL_CREDIT", 0.0)

	dbURL := v.GetString("DB_CONNECTION_STRING")
	if dbURL == "" {
		return nil, errors.New("DB_CONNECTION_STRING environment variable is required")
	}

	privateKey, err := loadPrivateKey(v.GetString("PRIVATE_KEY_PATH"))
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	publicKey, err := loadPublicKey(v.GetString("PUBLIC_KEY_PATH"))
	if err != nil {
		return nil, fmt.Errorf("failed to load public key: %w", err)
	}

	ttl := v.GetDuration("TOKEN_TTL")
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %q", v.GetString("TOKEN_TTL"))
	}

	return &Config{
		Port:               v.GetString("PORT"),
		DatabaseURL:        dbURL,
		RedisAddress:       v.GetString("REDIS_ADDRESS"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		JWTPrivateKey:      privateKey,
		JWTPublicKey:       publicKey,
		TokenTTL:           ttl,
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		WebhookSecret:      v.GetString("WEBHOOK_SECRET"),
		PartialCredit:      v.GetFloat64("MATCHING_PARTIAL_CREDIT"),
		LogJSON:            v.GetBool("LOG_JSON"),
		LogDebug:           v.GetBool("LOG_DEBUG"),
	}, nil
}

// splitList splits a comma separated value and drops empty items.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(keyData)
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(keyData)
}
