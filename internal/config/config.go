package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL  = "photoshare.db"
	defaultServerPort   = "8080"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
)

// CloudinaryConfig is injected into the transformation client at construction.
// There is no package-level SDK state anywhere.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Secure    bool
}

type Config struct {
	AppEnv       string
	DatabaseURL  string
	ServerPort   string
	JWTSecret    string
	JWTAccessTTL time.Duration
	Cloudinary   CloudinaryConfig
}

// Load reads configuration from the environment, loading .env first if present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{
		AppEnv:      strings.ToLower(getEnv("APP_ENV", "dev")),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabaseURL),
		ServerPort:  getEnv("SERVER_PORT", defaultServerPort),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Secure:    parseBoolEnv("CLOUDINARY_SECURE", "true"),
		},
	}

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}
	cfg.JWTAccessTTL = ttl

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.Cloudinary.CloudName == "" || cfg.Cloudinary.APIKey == "" || cfg.Cloudinary.APISecret == "" {
		return fmt.Errorf("CLOUDINARY_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET must be set")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
