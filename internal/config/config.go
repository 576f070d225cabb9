package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// LLMBackend selects the completion service: "mock", "groq" or "vertex".
	LLMBackend string

	GroqAPIKey  string
	GroqBaseURL string

	GCPProjectID string
	GCPLocation  string

	ModelName   string
	Temperature float32
	MaxTokens   int

	// Engine policy constants.
	ContextWindow int
	MaxMessageLen int
	TitleLimit    int

	StorageBackend string // "memory" or "firestore"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

func getFloatEnv(key string, def float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Fatalf("%s must be a number, got %q", key, v)
	}
	return float32(f)
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("TASKPLAN_PORT", "8080"),

		LLMBackend: getEnv("TASKPLAN_LLM_BACKEND", "mock"),

		GroqAPIKey:  getEnv("TASKPLAN_GROQ_API_KEY", ""),
		GroqBaseURL: getEnv("TASKPLAN_GROQ_BASE_URL", ""),

		GCPProjectID: getEnv("TASKPLAN_GCP_PROJECT", ""),
		GCPLocation:  getEnv("TASKPLAN_GCP_LOCATION", "us-central1"),

		ModelName:   getEnv("TASKPLAN_MODEL_NAME", "llama-3.1-8b-instant"),
		Temperature: getFloatEnv("TASKPLAN_TEMPERATURE", 0.3),
		MaxTokens:   getIntEnv("TASKPLAN_MAX_TOKENS", 1024),

		ContextWindow: getIntEnv("TASKPLAN_CONTEXT_WINDOW", 10),
		MaxMessageLen: getIntEnv("TASKPLAN_MAX_MESSAGE_LEN", 1000),
		TitleLimit:    getIntEnv("TASKPLAN_TITLE_LIMIT", 100),

		StorageBackend: getEnv("TASKPLAN_STORAGE_BACKEND", "memory"),
	}

	switch cfg.LLMBackend {
	case "mock", "groq", "vertex":
	default:
		log.Fatalf("TASKPLAN_LLM_BACKEND must be mock, groq or vertex, got %q", cfg.LLMBackend)
	}

	if cfg.LLMBackend == "groq" && cfg.GroqAPIKey == "" {
		log.Fatal("TASKPLAN_GROQ_API_KEY must be set for the groq backend")
	}
	if cfg.LLMBackend == "vertex" && cfg.GCPProjectID == "" {
		log.Fatal("TASKPLAN_GCP_PROJECT must be set for the vertex backend")
	}
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("TASKPLAN_GCP_PROJECT must be set for the firestore backend")
	}

	return cfg
}
