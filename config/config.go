package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `mapstructure:"-"`

	// Server configuration
	ServerHost     string   `mapstructure:"SERVER_HOST" validate:"required"`
	ServerPort     string   `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	AppURL         string   `mapstructure:"APP_URL" validate:"required,url"`
	TrustedProxies []string `mapstructure:"-" validate:"dive,ip|cidr"`

	// Session configuration
	SessionSecret string        `mapstructure:"SESSION_SECRET" validate:"required,min=16"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`

	// Generative language API
	GeminiAPIKey string        `mapstructure:"GOOGLE_GENERATIVE_AI_API_KEY" validate:"required"`
	GeminiModel  string        `mapstructure:"GEMINI_MODEL" validate:"required"`
	ChatTimeout  time.Duration `mapstructure:"CHAT_TIMEOUT" validate:"gt=0"`

	// Storage
	DatabaseURL   string `mapstructure:"DATABASE_URL" validate:"required,url"`
	MongoURI      string `mapstructure:"MONGODB_URI" validate:"required,url"`
	MongoDatabase string `mapstructure:"MONGODB_DATABASE" validate:"required"`
	RedisURL      string `mapstructure:"REDIS_URL" validate:"omitempty,url"`
	EncryptionKey string `mapstructure:"ENCRYPTION_KEY" validate:"required,base64"`

	// HTTP edge
	CORSOrigins     []string      `mapstructure:"-" validate:"dive,url"`
	RateLimitMax    int           `mapstructure:"RATE_LIMIT_MAX" validate:"min=1"`
	RateLimitWindow time.Duration `mapstructure:"RATE_LIMIT_WINDOW" validate:"gt=0"`

	// Error tracking
	SentryDSN string `mapstructure:"SENTRY_DSN" validate:"omitempty,url"`

	// Recipe image storage
	S3BucketName string `mapstructure:"S3_BUCKET_NAME"`
	AWSRegion    string `mapstructure:"AWS_REGION"`
}

// keys bound from the environment; anything listed in secretKeys may also
// come from a Docker secret file.
var (
	envKeys = []string{
		"SERVER_HOST", "SERVER_PORT", "APP_URL", "TRUSTED_PROXIES",
		"SESSION_SECRET", "SESSION_TTL",
		"GOOGLE_GENERATIVE_AI_API_KEY", "GEMINI_MODEL", "CHAT_TIMEOUT",
		"DATABASE_URL", "MONGODB_URI", "MONGODB_DATABASE", "REDIS_URL", "ENCRYPTION_KEY",
		"CORS_ORIGINS", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW",
		"SENTRY_DSN", "S3_BUCKET_NAME", "AWS_REGION",
	}
	secretKeys = []string{
		"SESSION_SECRET", "ENCRYPTION_KEY", "GOOGLE_GENERATIVE_AI_API_KEY",
		"DATABASE_URL", "MONGODB_URI", "REDIS_URL", "SENTRY_DSN",
	}
)

// LoadConfig reads configuration from the environment, an optional .env file
// and Docker secrets, then validates it.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// CI injects everything through the environment
	if env != CI {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if env != CI {
		for _, key := range secretKeys {
			if v.GetString(key) != "" {
				continue
			}
			if secret := readSecret(strings.ToLower(key)); secret != "" {
				v.Set(key, secret)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Environment = env
	cfg.AppURL = strings.TrimRight(cfg.AppURL, "/")
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	cfg.TrustedProxies = splitList(v.GetString("TRUSTED_PROXIES"))

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("CHAT_TIMEOUT", "15s")
	v.SetDefault("MONGODB_DATABASE", "fitturk")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "60s")
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// ImageUploadsEnabled reports whether recipe images can be pushed to S3.
func (c *Config) ImageUploadsEnabled() bool {
	return c.S3BucketName != "" && c.AWSRegion != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
