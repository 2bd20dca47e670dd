package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "MONGODB_URI", "OPENGOV_APP_PORT", "OPENGOV_MONGO_URI",
		"OPENGOV_CHAT_MODE", "OPENGOV_LOG_FORMAT", "OPENGOV_ACTIONS_DELAY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "opengov", cfg.App.Name)
		assert.Equal(t, "7521", cfg.App.Port)
		assert.Equal(t, "", cfg.Mongo.URI)
		assert.False(t, cfg.UseMongo())
		assert.Equal(t, "opengov", cfg.Mongo.Database)
		assert.Equal(t, "user", cfg.Session.CookieName)
		assert.Equal(t, ChatWidget, cfg.Chat.Mode)
		assert.Equal(t, DefaultWidgetURL, cfg.Chat.WidgetURL)
		assert.Equal(t, time.Second, cfg.Actions.Delay)
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("prefixed env vars override defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENGOV_APP_PORT", "9000")
		t.Setenv("OPENGOV_CHAT_MODE", "keyword")
		t.Setenv("OPENGOV_ACTIONS_DELAY", "250ms")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, ChatKeyword, cfg.Chat.Mode)
		assert.Equal(t, 250*time.Millisecond, cfg.Actions.Delay)
	})

	t.Run("legacy env names still apply", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "8088")
		t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8088", cfg.App.Port)
		assert.True(t, cfg.UseMongo())
	})

	t.Run("rejects unknown chat mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENGOV_CHAT_MODE", "llm")

		_, err := Load()
		assert.ErrorContains(t, err, "chat.mode")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	log.Info("hidden")
	log.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
