package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

const (
	// Version is reported by /api/info and the root health check.
	Version     = "1.0.0"
	Description = "Event Information Website API"

	DefaultPort        = "5000"
	DefaultContentDir  = "content"
	DefaultSecretKey   = "dev-secret-key-change-in-production"
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"
	DefaultRecentLimit = 5
	MaxRecentLimit     = 50
)

// Config is the explicit runtime configuration handed to the server and the
// content manager.
type Config struct {
	Port        string
	ContentDir  string
	SecretKey   string
	Environment string
	LogLevel    string
	RecentLimit int

	// Markdown rendering; see services.MarkdownOptions.
	MarkdownSafeMode   bool
	MarkdownHardWraps  bool
	MarkdownHeadingIDs bool
	MarkdownExtensions []string
}

// Default returns the configuration used when nothing is set in the environment.
func Default() Config {
	return Config{
		Port:        DefaultPort,
		ContentDir:  DefaultContentDir,
		SecretKey:   DefaultSecretKey,
		Environment: DefaultEnvironment,
		LogLevel:    DefaultLogLevel,
		RecentLimit: DefaultRecentLimit,
	}
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() Config {
	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := Default()
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.ContentDir = getEnv("CONTENT_DIR", cfg.ContentDir)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.Environment = getEnv("APP_ENV", getEnv("FLASK_ENV", cfg.Environment))
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))

	if rl := os.Getenv("RECENT_LIMIT"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil {
			cfg.RecentLimit = val
		}
	}
	cfg.MarkdownSafeMode = getBool("MARKDOWN_SAFE_MODE", cfg.MarkdownSafeMode)
	cfg.MarkdownHardWraps = getBool("MARKDOWN_HARD_WRAPS", cfg.MarkdownHardWraps)
	cfg.MarkdownHeadingIDs = getBool("MARKDOWN_HEADING_IDS", cfg.MarkdownHeadingIDs)
	// Comma separated goldmark extension names, e.g. "gfm,footnote".
	if exts := os.Getenv("MARKDOWN_EXTENSIONS"); exts != "" {
		for _, name := range strings.Split(exts, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.MarkdownExtensions = append(cfg.MarkdownExtensions, name)
			}
		}
	}

	return cfg
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseBool(v); err == nil {
			return val
		}
	}
	return fallback
}

// Debug reports whether the server runs in development mode.
func (c Config) Debug() bool {
	return c.Environment == DefaultEnvironment
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Validate checks the configuration before the server starts.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.By(validPort)),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.SecretKey, validation.Required),
		validation.Field(&c.Environment, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.RecentLimit, validation.Required, validation.Min(1), validation.Max(MaxRecentLimit)),
	)
}

func validPort(value interface{}) error {
	s, _ := value.(string)
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return validation.NewError("validation_port", "must be a number between 1 and 65535")
	}
	return nil
}
