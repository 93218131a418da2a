package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-critic/internal/shared/telemetry"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultLLMTimeout     = 20 * time.Second
)

// Config holds application configuration.
type Config struct {
	Host            string
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	CORSAllowOrigin []string
	MaxUploadBytes  int64
	RulesFile       string
	RateLimitRPS    float64
	RateLimitBurst  int
	SourceStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	UploadsBucket   string
	UploadsPrefix   string
	LLMProvider     string
	LLMModel        string
	LLMAPIKey       string
	LLMBaseURL      string
	LLMTimeout      time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8000"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		RulesFile:       getEnv("RULES_FILE", ""),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:  int(getEnvInt64("RATE_LIMIT_BURST", 10)),
		SourceStoreType: normalizeStoreType(getEnv("SOURCE_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		UploadsBucket:   getEnv("UPLOADS_S3_BUCKET", ""),
		UploadsPrefix:   getEnv("UPLOADS_S3_PREFIX", "documents/"),
		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "none")),
		LLMModel:        getEnv("LLM_MODEL", ""),
		LLMAPIKey:       getEnv("LLM_API_KEY", ""),
		LLMBaseURL:      getEnv("LLM_BASE_URL", ""),
		LLMTimeout:      getEnvDuration("LLM_TIMEOUT", defaultLLMTimeout),
	}
}

// Addr returns the listen address for host and port.
func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if port == "" {
		port = "8000"
	}
	return strings.TrimSpace(c.Host) + ":" + port
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	default:
		return "none"
	}
}
