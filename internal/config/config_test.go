package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paisabot/internal/logging"
)

func TestLoadDefaults(t *testing.T) {
	logging.Disable()
	for _, key := range []string{
		"PORT", "WEBHOOK_VERIFY_TOKEN", "WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID",
		"GRAPH_BASE_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "CHAT_MODEL",
		"WHISPER_MODEL", "SQLITE_PATH",
	} {
		t.Setenv(key, "")
	}

	c := Load()
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "https://graph.facebook.com/v19.0", c.GraphBaseURL)
	assert.Equal(t, "https://api.openai.com/v1", c.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-mini", c.ChatModel)
	assert.Equal(t, "whisper-1", c.WhisperModel)
	assert.Equal(t, "./data/paisabot.db", c.SQLitePath)
}

func TestLoadOverrides(t *testing.T) {
	logging.Disable()
	t.Setenv("PORT", "9090")
	t.Setenv("WEBHOOK_VERIFY_TOKEN", "tok")
	t.Setenv("CHAT_MODEL", "gpt-4o")

	c := Load()
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, "tok", c.VerifyToken)
	assert.Equal(t, "gpt-4o", c.ChatModel)
}

func TestLoadBadPortFallsBack(t *testing.T) {
	logging.Disable()
	t.Setenv("PORT", "not-a-number")

	c := Load()
	assert.Equal(t, 8080, c.Port)
}
