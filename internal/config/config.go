package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	Env     string
	Host    string
	Port    int
	Debug   bool

	CORSOrigins []string

	// FixturesPath selects a seed file; empty uses the bundled seed.
	FixturesPath  string
	SessionUserID string

	Location   *time.Location
	TimeLabels string

	RateLimitRPS     float64
	RateLimitBurst   int
	MaxMessageLength int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName: getEnv("APP_NAME", "Med Inbox API"),
		Env:     getEnv("APP_ENV", "development"),
		Host:    getEnv("HTTP_HOST", "0.0.0.0"),
		Port:    getEnvAsInt("HTTP_PORT", 8000),
		Debug:   getEnvAsBool("DEBUG", true),

		FixturesPath:  getEnv("FIXTURES_PATH", ""),
		SessionUserID: getEnv("SESSION_USER_ID", ""),
		TimeLabels:    getEnv("TIME_LABELS", "en"),

		RateLimitRPS:     getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   getEnvAsInt("RATE_LIMIT_BURST", 20),
		MaxMessageLength: getEnvAsInt("MAX_MESSAGE_LENGTH", 4000),
	}

	cors := getEnv("CORS_ORIGINS", "")
	if cors != "" {
		parts := strings.Split(cors, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.CORSOrigins = parts
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	loc, err := time.LoadLocation(getEnv("TIME_LOCATION", "Local"))
	if err != nil {
		return nil, fmt.Errorf("TIME_LOCATION: %w", err)
	}
	cfg.Location = loc

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("HTTP_PORT %d out of range", cfg.Port)
	}
	if cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Dev reports whether development logging should be used.
func (c *Config) Dev() bool {
	return c.Debug || c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvAsFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
