package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/nhle/email-triage/internal/credential"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Addr         string        `env:"TRIAGE_ADDR" envDefault:":8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./data/triage.db"`
	AccountsFile string        `env:"ACCOUNTS_FILE" envDefault:"./accounts.yaml"`
	AuthRequired bool          `env:"AUTH_REQUIRED" envDefault:"false"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Ingestion is enabled when IMAPHost is set.
	IMAPHost           string        `env:"IMAP_HOST"`
	IMAPPort           int           `env:"IMAP_PORT" envDefault:"993"`
	IMAPUser           string        `env:"IMAP_USER"`
	IMAPPassword       string        `env:"IMAP_PASSWORD"`
	IMAPTLS            bool          `env:"IMAP_TLS" envDefault:"true"`
	IngestInterval     time.Duration `env:"INGEST_INTERVAL" envDefault:"5m"`
	IngestLookbackDays int           `env:"INGEST_LOOKBACK_DAYS" envDefault:"7"`
	IngestLimit        int           `env:"INGEST_LIMIT" envDefault:"200"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// IngestEnabled reports whether an IMAP mailbox is configured.
func (c *Config) IngestEnabled() bool {
	return c.IMAPHost != ""
}

// SecretLookup resolves a keyring key, returning "" when it is unset.
type SecretLookup func(key string) (string, error)

// LoadConfig loads an optional .env file, parses the environment and fills
// unset secrets from the keyring.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return loadConfig(env.ToMap(os.Environ()), credential.Lookup)
}

func loadConfig(environ map[string]string, secrets SecretLookup) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.JWTSecret == "" {
		s, err := secrets(credential.KeyJWTSecret)
		if err != nil {
			return nil, fmt.Errorf("reading jwt secret from keyring: %w", err)
		}
		cfg.JWTSecret = s
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set and no jwt-secret is stored in the keyring")
	}

	if cfg.IngestEnabled() {
		if cfg.IMAPUser == "" {
			return nil, errors.New("IMAP_USER is required when IMAP_HOST is set")
		}
		if cfg.IMAPPassword == "" {
			s, err := secrets(credential.IMAPPasswordKey(cfg.IMAPUser))
			if err != nil {
				return nil, fmt.Errorf("reading imap password from keyring: %w", err)
			}
			cfg.IMAPPassword = s
		}
		if cfg.IngestInterval <= 0 {
			return nil, fmt.Errorf("INGEST_INTERVAL must be positive, got %s", cfg.IngestInterval)
		}
	}

	return cfg, nil
}
