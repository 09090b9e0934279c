package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  secret_key: s3cret\n")
	require.NoError(t, Load(dir))

	cfg := GetConfig()
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "s3cret", cfg.Server.SecretKey)
	assert.Equal(t, 0.85, cfg.Moderation.AutoApproveThreshold)
	assert.Equal(t, 0.60, cfg.Moderation.RejectThreshold)
	assert.Equal(t, 500, cfg.Moderation.MaxBatchSize)
	assert.Equal(t, 30*time.Second, cfg.Models.BreakerTimeout)
	assert.Equal(t, uint32(3), cfg.Models.BreakerMaxFailures)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "listing-decisions", cfg.Kafka.Topic)
}

func TestLoad_ValuesAndEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
moderation:
  auto_approve_threshold: 0.9
  reject_threshold: 0.5
models:
  dir: /srv/models
  breaker_timeout: 5s
kafka:
  enabled: true
  host: broker
  port: 9093
  topic: decisions
`)
	t.Setenv("MODERATION_REJECT_THRESHOLD", "0.4")
	require.NoError(t, Load(dir))

	cfg := GetConfig()
	assert.Equal(t, 0.9, cfg.Moderation.AutoApproveThreshold)
	assert.Equal(t, 0.4, cfg.Moderation.RejectThreshold)
	assert.Equal(t, "/srv/models", cfg.Models.Dir)
	assert.Equal(t, 5*time.Second, cfg.Models.BreakerTimeout)
	assert.Equal(t, map[string]interface{}{"host": "broker", "port": "9093", "topic": "decisions"}, cfg.Kafka.Settings())
}

func TestLoad_MissingFile(t *testing.T) {
	err := Load(t.TempDir())
	assert.ErrorContains(t, err, "not found")
}
