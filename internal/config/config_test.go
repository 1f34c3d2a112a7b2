package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OUTBOX_RECONCILE_INTERVAL", "")
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "")

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.Worker.OutboxReconcileInterval)
	assert.Equal(t, 5, cfg.Worker.OutboxMaxAttempts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OUTBOX_RECONCILE_INTERVAL", "15s")
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "3")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, 15*time.Second, cfg.Worker.OutboxReconcileInterval)
	assert.Equal(t, 3, cfg.Worker.OutboxMaxAttempts)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("BROKEN_INT", "abc")
	t.Setenv("BROKEN_BOOL", "maybe")
	t.Setenv("BROKEN_DURATION", "soon")

	assert.Equal(t, 7, getEnvAsInt("BROKEN_INT", 7))
	assert.False(t, getEnvAsBool("BROKEN_BOOL", false))
	assert.Equal(t, time.Second, getEnvAsDuration("BROKEN_DURATION", time.Second))
}
