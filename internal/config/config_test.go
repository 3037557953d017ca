package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davemont/deskpilot/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0.6, cfg.Pipeline.ShoutRatio)
	assert.Equal(t, 3, cfg.Pipeline.RepeatTicketThreshold)
	assert.Equal(t, 50, cfg.Pipeline.HistoryLimit)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.LiveFeedInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHOUT_RATIO", "0.5")
	t.Setenv("REPEAT_TICKET_THRESHOLD", "2")
	t.Setenv("HISTORY_LIMIT", "10")
	t.Setenv("LIVE_FEED_INTERVAL_SECONDS", "1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 0.5, cfg.Pipeline.ShoutRatio)
	assert.Equal(t, 2, cfg.Pipeline.RepeatTicketThreshold)
	assert.Equal(t, 10, cfg.Pipeline.HistoryLimit)
	assert.Equal(t, time.Second, cfg.Pipeline.LiveFeedInterval)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SHOUT_RATIO", "1.5")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "80 80")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadAcceptsExplicitAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:8081")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Addr)
}
