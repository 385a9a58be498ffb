package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:          "a-reasonably-long-development-secret",
		Port:               "8460",
		DBPassword:         "password",
		Env:                "development",
		PresenceTTLSeconds: 90,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts development defaults", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("requires a port", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires a JWT secret", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires a positive presence TTL", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.PresenceTTLSeconds = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects the default JWT secret", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short secrets and weak DB passwords", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())

		cfg = validConfig()
		cfg.Env = "production"
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})
}
