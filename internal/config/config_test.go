package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.Namecheap.Sandbox)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("DB_PORT_BAD", "zzz")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("NAMECHEAP_SANDBOX", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.False(t, cfg.Namecheap.Sandbox)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("JWT_EXPIRY", "not-a-duration")
	t.Setenv("NAMECHEAP_SANDBOX", "not-a-bool")

	cfg := Load()

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.True(t, cfg.Namecheap.Sandbox)
}

func TestDatabaseURL(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "agent", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/agent?sslmode=disable", c.URL())
}

func TestNamecheapBaseURL(t *testing.T) {
	assert.Contains(t, NamecheapConfig{Sandbox: true}.BaseURL(), "sandbox")
	assert.NotContains(t, NamecheapConfig{Sandbox: false}.BaseURL(), "sandbox")
}
