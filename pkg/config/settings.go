package config

import (
	"errors"
	"fmt"
	"time"
)

// Settings is the resolved runtime configuration. The credential pair and the
// token secret are required and are never echoed back or logged.
type Settings struct {
	Addr        string
	Environment string
	EnableHTTPS bool

	Secret      []byte
	SessionName string
	SessionTTL  time.Duration

	Username string
	Password string

	MaxLoginAttempts int
	LockoutWindow    time.Duration

	CompanyName string
}

const minSecretLength = 32

// LoadSettings resolves Settings from a Config. It fails when a required
// secret is missing rather than inventing a default.
func LoadSettings(cfg *Config) (*Settings, error) {
	username := cfg.GetString("AUTH_USERNAME")
	if username == "" {
		return nil, errors.New("AUTH_USERNAME environment variable is required")
	}
	password := cfg.GetString("AUTH_PASSWORD")
	if password == "" {
		return nil, errors.New("AUTH_PASSWORD environment variable is required")
	}
	secret := cfg.GetString("PORTAL_SECRET")
	if secret == "" {
		return nil, errors.New("PORTAL_SECRET environment variable is required")
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("PORTAL_SECRET must be at least %d characters long", minSecretLength)
	}

	return &Settings{
		Addr:             cfg.GetString("PORTAL_ADDR", ":3000"),
		Environment:      cfg.GetString("PORTAL_ENV", "development"),
		EnableHTTPS:      cfg.GetBool("PORTAL_HTTPS", false),
		Secret:           []byte(secret),
		SessionName:      cfg.GetString("PORTAL_SESSION_NAME", "session"),
		SessionTTL:       cfg.GetDuration("PORTAL_SESSION_TTL", "8h"),
		Username:         username,
		Password:         password,
		MaxLoginAttempts: cfg.GetInt("PORTAL_MAX_LOGIN_ATTEMPTS", 5),
		LockoutWindow:    cfg.GetDuration("PORTAL_LOCKOUT_WINDOW", "15m"),
		CompanyName:      cfg.GetString("PORTAL_COMPANY_NAME", "Suitlabs Bali"),
	}, nil
}
