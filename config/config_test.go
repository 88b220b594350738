package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/tournament?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.SnapshotInterval)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.ErrorContains(t, err, "SERVER_PORT")
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	assert.ErrorContains(t, err, "LOG_FORMAT")
}

func TestStorageEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "snapshots")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("SNAPSHOT_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, 5*time.Minute, cfg.SnapshotInterval)
}
