package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pratm1304/IntelliDocs-Ai/llm"
)

// ConfigError reports a missing or invalid setting
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Key, e.Reason)
}

type Config struct {
	GeminiAPIKey    string
	GeminiModel     string
	Port            string
	ReposDir        string
	UploadsDir      string
	MaxSummaryBytes int
	MaxUploadMB     int64
	IgnorePatterns  []string
	GitHubToken     string
	LogLevel        string
	LogFormat       string
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), llm.DefaultGeminiModel),
		Port:         normalizePort(firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), "5001")),
		ReposDir:     firstNonEmpty(strings.TrimSpace(os.Getenv("TEMP_REPOS_DIR")), "temp_repos"),
		UploadsDir:   firstNonEmpty(strings.TrimSpace(os.Getenv("TEMP_UPLOADS_DIR")), "temp_uploads"),
		GitHubToken:  strings.TrimSpace(os.Getenv("GH_TOKEN")),
		LogLevel:     firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "info"),
		LogFormat:    firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "console"),
	}
	var err error
	if cfg.MaxSummaryBytes, err = intEnv("MAX_SUMMARY_BYTES", 0); err != nil {
		return nil, err
	}
	maxUpload, err := intEnv("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadMB = int64(maxUpload)
	cfg.IgnorePatterns = splitList(os.Getenv("IGNORE_PATTERNS"))
	return cfg, nil
}

// RequireAPIKey fails when no Gemini API key is configured
func (c *Config) RequireAPIKey() error {
	if c.GeminiAPIKey == "" {
		return &ConfigError{Key: "GEMINI_API_KEY", Reason: "is not set; check your .env file"}
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SetPort overrides the configured port, accepting "8080" or ":8080"
func (c *Config) SetPort(port string) {
	if port = strings.TrimSpace(port); port != "" {
		c.Port = normalizePort(port)
	}
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("must be a non-negative integer, got %q", raw)}
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func normalizePort(port string) string {
	return strings.TrimPrefix(port, ":")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
