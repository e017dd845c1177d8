package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")
	t.Setenv("ENV", "")
	t.Setenv("BACKEND_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8081", cfg.Backend.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout)
	assert.Equal(t, 86400, cfg.Session.MaxAge)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://rail.example.com/")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "3")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://rail.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 3, cfg.RateLimit.LoginPerMinute)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Env: "production"},
			Backend: BackendConfig{BaseURL: "http://backend:8081"},
			Session: SessionConfig{Secret: "s3cret", MaxAge: 60},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.Backend.BaseURL = "not a url" }, true},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = -time.Second }, true},
		{"default secret in production", func(c *Config) { c.Session.Secret = defaultSessionSecret }, true},
		{"default secret in development", func(c *Config) {
			c.Session.Secret = defaultSessionSecret
			c.Server.Env = "development"
		}, false},
		{"zero max age", func(c *Config) { c.Session.MaxAge = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
