package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStatic = "static"
)

// DefaultAllowedOrigins are the local dev origin and the production site.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://desafio-ia-vitor.vercel.app",
}

var ErrMissingAPIKey = errors.New("provider API key is required")

type Config struct {
	LogLevel       string
	Debug          bool
	ServiceName    string
	Environment    string
	Hostname       string
	ServerPort     string
	AllowedOrigins []string
	Provider       string
	GeminiAPIKeys  []string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	StreamTimeout  time.Duration
}

func LoadConfig() (*Config, error) {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini))

	// GOOGLE_API_KEY is always the first key.
	primaryKey := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	var geminiAPIKeys []string
	if primaryKey != "" {
		geminiAPIKeys = append(geminiAPIKeys, primaryKey)
	}
	geminiAPIKeys = append(geminiAPIKeys, splitList(os.Getenv("GEMINI_API_KEYS"))...)

	openAIAPIKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	switch provider {
	case ProviderGemini:
		if primaryKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY: %w", ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if openAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY: %w", ErrMissingAPIKey)
		}
	case ProviderStatic:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}

	allowedOrigins := DefaultAllowedOrigins
	if ao := splitList(os.Getenv("ALLOWED_ORIGINS")); len(ao) > 0 {
		allowedOrigins = ao
	}

	var streamTimeout time.Duration
	if st := os.Getenv("STREAM_TIMEOUT"); st != "" {
		parsed, err := time.ParseDuration(st)
		if err != nil {
			return nil, fmt.Errorf("invalid STREAM_TIMEOUT: %w", err)
		}
		streamTimeout = parsed
	}

	return &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Debug:          getEnv("DEBUG", "false") == "true",
		ServiceName:    getEnv("SERVICE_NAME", "article-stream"),
		Hostname:       getEnv("HOSTNAME", "article-stream"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerPort:     getEnv("PORT", "3001"),
		AllowedOrigins: allowedOrigins,
		Provider:       provider,
		GeminiAPIKeys:  geminiAPIKeys,
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:   openAIAPIKey,
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		StreamTimeout:  streamTimeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated value, trimming whitespace and dropping empties.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
