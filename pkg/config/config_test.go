package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func productionConfig() *Config {
	return &Config{
		Environment:          EnvProduction,
		LogLevel:             "info",
		SessionAuthKey:       strings.Repeat("a", 32),
		SessionEncryptionKey: strings.Repeat("b", 32),
		ItemCacheTTL:         time.Hour,
		RequestsPerMinute:    100,
	}
}

func TestValidateForProduction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid production config", func(*Config) {}, ""},
		{"non-production skips checks", func(c *Config) {
			c.Environment = EnvDevelopment
			c.SessionAuthKey = ""
		}, ""},
		{"short auth key", func(c *Config) { c.SessionAuthKey = "short" }, "SESSION_AUTH_KEY"},
		{"bad encryption key length", func(c *Config) { c.SessionEncryptionKey = strings.Repeat("x", 20) }, "SESSION_ENCRYPTION_KEY"},
		{"debug logging", func(c *Config) { c.LogLevel = "debug" }, "LOG_LEVEL"},
		{"zero cache ttl", func(c *Config) { c.ItemCacheTTL = 0 }, "ITEM_CACHE_TTL"},
		{"no rate limit", func(c *Config) { c.RequestsPerMinute = 0 }, "HTTP_REQUESTS_PER_MINUTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := productionConfig()
			tt.mutate(cfg)
			err := ValidateForProduction(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInsecureConfig)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateForProduction_ReportsEveryFailure(t *testing.T) {
	cfg := productionConfig()
	cfg.SessionAuthKey = ""
	cfg.LogLevel = "debug"

	err := ValidateForProduction(cfg)
	require.ErrorContains(t, err, "SESSION_AUTH_KEY")
	require.ErrorContains(t, err, "LOG_LEVEL")
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := productionConfig()
	cfg.DatabaseURL = "postgres://market:hunter2@db/usedmarket"

	out := cfg.String()
	require.NotContains(t, out, "hunter2")
	require.NotContains(t, out, cfg.SessionAuthKey)
}
