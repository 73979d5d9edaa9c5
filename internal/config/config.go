package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultGreeting is used when no greeting is configured in the database.
const DefaultGreeting = "سلام! چطور می‌تونم کمکتون کنم؟"

// Config holds all configuration for the application.
type Config struct {
	Env       string
	APIPort   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string

	OpenAI    OpenAI
	Retrieval Retrieval
	Crawl     Crawl
	RateLimit RateLimit

	GreetingMessage string
	FrontendOrigin  string
	AdminAPIKey     string
	SeedFile        string
	SeedWatch       bool
}

// OpenAI configures the answer generator. BaseURL may point at any
// OpenAI-compatible server.
type OpenAI struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Retrieval holds the knobs shared by the retriever and the answer guard.
type Retrieval struct {
	MinConfidence       float64
	KBTopK              int
	WebsiteTopK         int
	ScoreExcerptChars   int
	ContextExcerptChars int
}

type Crawl struct {
	MaxPages       int
	Timeout        time.Duration
	RateLimitDelay time.Duration
	MaxBodyBytes   int64
}

// RateLimit bounds chat requests per client.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// DefaultRetrieval returns the retrieval settings used when nothing is configured.
func DefaultRetrieval() Retrieval {
	return Retrieval{
		MinConfidence:       0.70,
		KBTopK:              5,
		WebsiteTopK:         3,
		ScoreExcerptChars:   1000,
		ContextExcerptChars: 500,
	}
}

// DefaultCrawl returns the crawl settings used when nothing is configured.
func DefaultCrawl() Crawl {
	return Crawl{
		MaxPages:       100,
		Timeout:        10 * time.Second,
		RateLimitDelay: time.Second,
		MaxBodyBytes:   5 << 20,
	}
}

// IsDevelopment reports whether debug output may be returned to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the result.
// A .env file in the current directory or one of its parents is loaded first;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		Env:       strings.ToLower(getEnv("ENV", EnvDevelopment)),
		APIPort:   getEnv("API_PORT", "8000"),
		DBPath:    getEnv("DB_PATH", "./data/domainbot.db"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		OpenAI: OpenAI{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		},
		GreetingMessage: getEnv("GREETING_MESSAGE", DefaultGreeting),
		FrontendOrigin:  getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		AdminAPIKey:     getEnv("ADMIN_API_KEY", ""),
		SeedFile:        getEnv("SEED_FILE", ""),
	}

	var err error
	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return nil, fmt.Errorf("ENV must be %s or %s, got %q", EnvDevelopment, EnvProduction, cfg.Env)
	}

	if cfg.OpenAI.Timeout, err = getSeconds("OPENAI_TIMEOUT", 30); err != nil {
		return nil, err
	}

	cfg.Retrieval = DefaultRetrieval()
	if cfg.Retrieval.MinConfidence, err = getFloat("MIN_CONFIDENCE_SCORE", cfg.Retrieval.MinConfidence); err != nil {
		return nil, err
	}
	if cfg.Retrieval.MinConfidence < 0 || cfg.Retrieval.MinConfidence > 1 {
		return nil, fmt.Errorf("MIN_CONFIDENCE_SCORE must be between 0 and 1")
	}
	if cfg.Retrieval.KBTopK, err = getPositiveInt("KB_TOP_K", cfg.Retrieval.KBTopK); err != nil {
		return nil, err
	}
	if cfg.Retrieval.WebsiteTopK, err = getPositiveInt("WEBSITE_TOP_K", cfg.Retrieval.WebsiteTopK); err != nil {
		return nil, err
	}
	if cfg.Retrieval.ScoreExcerptChars, err = getPositiveInt("SCORE_EXCERPT_CHARS", cfg.Retrieval.ScoreExcerptChars); err != nil {
		return nil, err
	}
	if cfg.Retrieval.ContextExcerptChars, err = getPositiveInt("CONTEXT_EXCERPT_CHARS", cfg.Retrieval.ContextExcerptChars); err != nil {
		return nil, err
	}

	cfg.Crawl = DefaultCrawl()
	if cfg.Crawl.MaxPages, err = getPositiveInt("MAX_CRAWL_PAGES", cfg.Crawl.MaxPages); err != nil {
		return nil, err
	}
	if cfg.Crawl.Timeout, err = getSeconds("CRAWL_TIMEOUT_SECONDS", 10); err != nil {
		return nil, err
	}
	if cfg.Crawl.RateLimitDelay, err = getSeconds("CRAWL_RATE_LIMIT_DELAY", 1.0); err != nil {
		return nil, err
	}

	cfg.RateLimit.Requests, err = getPositiveInt("CHAT_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = getSeconds("CHAT_RATE_WINDOW", 60); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("CHAT_RATE_WINDOW must be greater than 0")
	}

	if cfg.SeedWatch, err = strconv.ParseBool(getEnv("SEED_WATCH", "false")); err != nil {
		return nil, fmt.Errorf("SEED_WATCH must be a boolean: %w", err)
	}

	if cfg.Env == EnvProduction {
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required in production")
		}
		if cfg.AdminAPIKey == "" {
			return nil, fmt.Errorf("ADMIN_API_KEY is required in production")
		}
	}

	// Create the data directory for the database file
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads the first .env found walking up from the working directory.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}

// getSeconds parses a (possibly fractional) number of seconds.
func getSeconds(key string, defaultSeconds float64) (time.Duration, error) {
	secs, err := getFloat(key, defaultSeconds)
	if err != nil {
		return 0, err
	}
	if secs < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	return level, nil
}
