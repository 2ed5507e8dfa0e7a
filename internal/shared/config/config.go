package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port        string
	Env         string
	FilesDir    string
	DatabaseURL string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMModel      string
	TTSBaseURL    string

	OCRTimeout time.Duration
	LLMTimeout time.Duration
	TTSTimeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		Env:           env,
		FilesDir:      getEnv("FILES_DIR", "./files"),
		DatabaseURL:   dbURL,
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		LLMModel:      getEnv("LLM_MODEL", "gpt-4"),
		TTSBaseURL:    getEnv("TTS_BASE_URL", ""),
		OCRTimeout:    getEnvSeconds("OCR_TIMEOUT_SECONDS", 120),
		LLMTimeout:    getEnvSeconds("LLM_TIMEOUT_SECONDS", 120),
		TTSTimeout:    getEnvSeconds("TTS_TIMEOUT_SECONDS", 60),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvSeconds(key string, def int) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(def) * time.Second
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("config env %s invalid seconds: %q", key, raw)
		return time.Duration(def) * time.Second
	}
	return time.Duration(parsed) * time.Second
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
