package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("BACKEND_TIMEOUT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "America/Santiago", cfg.Timezone)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("BACKEND_URL", "https://api.revitek.cl/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ORIGINS", "https://revitek.cl, https://admin.revitek.cl,")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.revitek.cl", cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"https://revitek.cl", "https://admin.revitek.cl"}, cfg.CORSOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "soon")
	t.Setenv("PUBLIC_RATE_PER_MIN", "-4")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 30, cfg.PublicRatePerMin)
}
