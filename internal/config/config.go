// Package config loads runtime settings from the environment, with a .env
// file honored when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the assistant needs at startup.
type Config struct {
	// OllamaHost is read by the Ollama client from OLLAMA_HOST directly;
	// kept here so startup logging can report it.
	OllamaHost string
	Model      string
	DBPath     string
	UserID     string
	// DisableFuzzy turns off the token-based ratios and keeps only sequence
	// matching. Mirrors environments without the fuzzy extras installed.
	DisableFuzzy bool
}

// Load reads .env (if any) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		OllamaHost:   getEnv("OLLAMA_HOST", "http://127.0.0.1:11434"),
		Model:        getEnv("TASKORY_MODEL", "llama3.2"),
		DBPath:       getEnv("TASKORY_DB", "taskory.db"),
		UserID:       getEnv("TASKORY_USER", "local"),
		DisableFuzzy: getBoolEnv("TASKORY_DISABLE_FUZZY", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
