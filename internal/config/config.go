package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"paisabot/internal/logging"
)

// Config holds everything the service reads from the environment.
// Base URLs are overridable so tests can point clients at local stubs.
type Config struct {
	Port int

	// Webhook handshake shared secret.
	VerifyToken string

	// WhatsApp Cloud API access.
	WhatsAppToken string
	PhoneNumberID string
	GraphBaseURL  string

	// Default model credential, used when an account has none of its own.
	OpenAIKey     string
	OpenAIBaseURL string
	ChatModel     string
	WhisperModel  string

	SQLitePath string
}

// Load reads configuration from .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logging.Infof("no .env file loaded, using environment: %v", err)
	}

	return Config{
		Port:          getEnvInt("PORT", 8080),
		VerifyToken:   getEnv("WEBHOOK_VERIFY_TOKEN", ""),
		WhatsAppToken: getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		GraphBaseURL:  getEnv("GRAPH_BASE_URL", "https://graph.facebook.com/v19.0"),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:     getEnv("CHAT_MODEL", "gpt-4o-mini"),
		WhisperModel:  getEnv("WHISPER_MODEL", "whisper-1"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/paisabot.db"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		logging.Warnf("invalid value for %s: %q, using %d", key, value, defaultVal)
		return defaultVal
	}
	return i
}
