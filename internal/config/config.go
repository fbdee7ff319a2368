package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

const AppName = "bloom-rent"

const defaultInviteTTLHours = 168 // 7 days

type Config struct {
	Env     string
	AppPort string
	// AppURL is the externally reachable base URL, used to build the
	// invitation accept links embedded in emails.
	AppURL string

	DBUrl string

	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string

	// Empty disables remote address validation (dev/test).
	AddressValidationAPIKey  string
	AddressValidationBaseURL string

	JWTPublicKey *rsa.PublicKey

	InviteTTL time.Duration
}

// LoadConfig reads everything from the environment, loading a local
// .env first when one exists. Missing required vars are fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		utils.Logger.Info("Loaded environment from .env")
	}

	cfg := &Config{
		Env:                      mustEnv("ENV"),
		AppPort:                  mustEnv("APP_PORT"),
		AppURL:                   mustEnv("APP_URL"),
		DBUrl:                    mustEnv("DATABASE_URL"),
		SendgridAPIKey:           mustEnv("SENDGRID_API_KEY"),
		SendgridFromEmail:        mustEnv("SENDGRID_FROM_EMAIL"),
		SendgridFromName:         envOr("SENDGRID_FROM_NAME", "Bloom Rent"),
		AddressValidationAPIKey:  os.Getenv("ADDRESS_VALIDATION_API_KEY"),
		AddressValidationBaseURL: os.Getenv("ADDRESS_VALIDATION_BASE_URL"),
		InviteTTL:                inviteTTL(),
	}

	pub, err := parsePublicKey(mustEnv("JWT_PUBLIC_KEY_B64"))
	if err != nil {
		utils.Logger.WithError(err).Fatal("JWT_PUBLIC_KEY_B64 is not a valid RSA public key")
	}
	cfg.JWTPublicKey = pub

	if cfg.AddressValidationAPIKey == "" {
		utils.Logger.Warn("ADDRESS_VALIDATION_API_KEY not set; address validation disabled")
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, cfg.Env)
	return cfg
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func inviteTTL() time.Duration {
	raw := os.Getenv("INVITE_TTL_HOURS")
	if raw == "" {
		return defaultInviteTTLHours * time.Hour
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		utils.Logger.Fatalf("INVITE_TTL_HOURS must be a positive integer, got %q", raw)
	}
	return time.Duration(hours) * time.Hour
}

// parsePublicKey decodes a base64-wrapped PEM public key. Base64 keeps
// multi-line PEM out of env-var escaping trouble.
func parsePublicKey(b64 string) (*rsa.PublicKey, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return pub, nil
}
