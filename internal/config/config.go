package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the Roastboard backend.
type Config struct {
	Port      int
	Version   string
	Agent     AgentConfig
	Nickname  NicknameConfig
	Database  DatabaseConfig
	Telemetry TelemetryConfig
}

// AgentConfig points at the hosted agent deployment that produces roasts.
type AgentConfig struct {
	BaseURL     string
	APIKey      string
	AgentID     string
	AuthScheme  string
	WaitTimeout time.Duration
}

// NicknameConfig points at the OpenAI-compatible completion endpoint used
// for display-name generation.
type NicknameConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
}

type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty means the in-memory
	// store is used instead (local dev, tests).
	URL string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envInt("ROASTBOARD_PORT", 8080),
		Version: envStr("ROASTBOARD_VERSION", "0.1.0"),
		Agent: AgentConfig{
			BaseURL:     envStr("ROASTBOARD_AGENT_URL", ""),
			APIKey:      envStr("LANGSMITH_API_KEY", ""),
			AgentID:     envStr("ROASTBOARD_AGENT_ID", ""),
			AuthScheme:  envStr("ROASTBOARD_AGENT_AUTH_SCHEME", "langsmith-api-key"),
			WaitTimeout: envDuration("ROASTBOARD_AGENT_WAIT_TIMEOUT", 120*time.Second),
		},
		Nickname: NicknameConfig{
			BaseURL:     envStr("ROASTBOARD_NICKNAME_URL", "https://api.groq.com/openai/v1"),
			APIKey:      envStr("GROQ_API_KEY", ""),
			Model:       envStr("ROASTBOARD_NICKNAME_MODEL", "openai/gpt-oss-20b"),
			Temperature: envFloat("ROASTBOARD_NICKNAME_TEMPERATURE", 1.2),
		},
		Database: DatabaseConfig{
			URL: envStr("DATABASE_URL", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "roastboard-backend"),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
