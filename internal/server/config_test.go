package server

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSecrets(string) (string, error) { return "", nil }

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(map[string]string{"JWT_SECRET": "s"}, noSecrets)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./data/triage.db", cfg.DatabasePath)
	assert.Equal(t, "./accounts.yaml", cfg.AccountsFile)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 993, cfg.IMAPPort)
	assert.True(t, cfg.IMAPTLS)
	assert.Equal(t, 5*time.Minute, cfg.IngestInterval)
	assert.Equal(t, 7, cfg.IngestLookbackDays)
	assert.Equal(t, 200, cfg.IngestLimit)
	assert.False(t, cfg.IngestEnabled())
}

func TestLoadConfigSecretFallback(t *testing.T) {
	stored := map[string]string{
		"jwt-secret":           "from-keyring",
		"imap-ana@example.com": "imap-pw",
	}
	lookup := func(key string) (string, error) { return stored[key], nil }

	cfg, err := loadConfig(map[string]string{
		"IMAP_HOST": "imap.example.com",
		"IMAP_USER": "ana@example.com",
	}, lookup)
	require.NoError(t, err)

	assert.Equal(t, "from-keyring", cfg.JWTSecret)
	assert.Equal(t, "imap-pw", cfg.IMAPPassword)
	assert.True(t, cfg.IngestEnabled())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		lookup  SecretLookup
	}{
		{"missing secret", map[string]string{}, noSecrets},
		{"keyring failure", map[string]string{}, func(string) (string, error) { return "", errors.New("locked") }},
		{"imap without user", map[string]string{"JWT_SECRET": "s", "IMAP_HOST": "h"}, noSecrets},
		{"bad duration", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "soon"}, noSecrets},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.environ, tt.lookup)
			assert.Error(t, err)
		})
	}
}
