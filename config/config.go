package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// RequestTimeout bounds one whole acquire+summarize request.
	RequestTimeout time.Duration

	// SummaryTimeout bounds a single provider call inside the gateway.
	SummaryTimeout time.Duration

	HTTPClientTimeout time.Duration

	LogDir string
	Debug  bool

	// MaxTranscriptChars caps the transcript text returned by the pipeline.
	MaxTranscriptChars int

	// MaxSummaryInputChars caps the text handed to a summarization provider.
	MaxSummaryInputChars int

	DefaultProvider string

	// YouTubeAPIKey enables the official Data API strategy; when empty that
	// strategy reports itself unavailable and the chain moves on.
	YouTubeAPIKey string

	GeminiModel    string
	OpenAIModel    string
	AnthropicModel string

	// Env-supplied fallback credentials; a per-request key always wins.
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

func LoadConfig() *Config {
	return &Config{
		ServerPort:           GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:          getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:         getEnvAsDuration("WRITE_TIMEOUT", 2*time.Minute),
		IdleTimeout:          getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		RequestTimeout:       getEnvAsDuration("REQUEST_TIMEOUT", 2*time.Minute),
		SummaryTimeout:       getEnvAsDuration("SUMMARY_TIMEOUT", 60*time.Second),
		HTTPClientTimeout:    getEnvAsDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second),
		LogDir:               GetEnv("LOG_DIR", "./logs"),
		Debug:                getEnvAsBool("DEBUG", false),
		MaxTranscriptChars:   getEnvAsInt("MAX_TRANSCRIPT_CHARS", 10000),
		MaxSummaryInputChars: getEnvAsInt("MAX_SUMMARY_INPUT_CHARS", 16000),
		DefaultProvider:      GetEnv("DEFAULT_PROVIDER", "gemini"),
		YouTubeAPIKey:        GetEnv("YOUTUBE_API_KEY", ""),
		GeminiModel:          GetEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		OpenAIModel:          GetEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicModel:       GetEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		GeminiAPIKey:         GetEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:         GetEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:      GetEnv("ANTHROPIC_API_KEY", ""),
	}
}

// ProviderKey returns the configured fallback credential for a provider name,
// or empty when none is set. Absence means "provider unavailable," never a
// startup error.
func (c *Config) ProviderKey(provider string) string {
	switch provider {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "claude":
		return c.AnthropicAPIKey
	}
	return ""
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid boolean, using default")
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("request timeout must be greater than 0")
	}
	if cfg.SummaryTimeout <= 0 {
		return errors.New("summary timeout must be greater than 0")
	}
	if cfg.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if cfg.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if cfg.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if cfg.MaxTranscriptChars <= 0 {
		return errors.New("max transcript chars must be greater than 0")
	}
	if cfg.MaxSummaryInputChars <= 0 {
		return errors.New("max summary input chars must be greater than 0")
	}
	return nil
}
