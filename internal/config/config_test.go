package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(2024), cfg.HttpServerPort)
	assert.Equal(t, "chat_logs", cfg.ChatLogDir)
	assert.Equal(t, 5, cfg.HistoryLines)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "8090")
	t.Setenv("CHAT_LOG_DIR", "/var/lib/chathub/logs")
	t.Setenv("HISTORY_LINES", "20")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(8090), cfg.HttpServerPort)
	assert.Equal(t, "/var/lib/chathub/logs", cfg.ChatLogDir)
	assert.Equal(t, 20, cfg.HistoryLines)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "80")

	_, err := LoadConfig()
	assert.Error(t, err, "ports below 1000 fail validation")
}

func TestLoadConfigRejectsNegativeHistory(t *testing.T) {
	t.Setenv("HISTORY_LINES", "-1")

	_, err := LoadConfig()
	assert.Error(t, err)
}
