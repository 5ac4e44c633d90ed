package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the movie catalog service.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CacheTTL  time.Duration
	LogLevel  slog.Level
	Port      string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	SSLRootCert  string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	var errs []string
	atoi := func(key, fallback string) int {
		v, err := strconv.Atoi(getEnv(key, fallback))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be an integer", key))
		}
		return v
	}

	cfg := &Config{
		DB: DBConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         atoi("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "movies"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			SSLRootCert:  getEnv("DB_SSLROOTCERT", ""),
			MaxOpenConns: atoi("DB_MAX_OPEN_CONNS", "25"),
			MaxIdleConns: atoi("DB_MAX_IDLE_CONNS", "10"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       atoi("REDIS_DB", "0"),
		},
		RateLimit: RateLimitConfig{
			Max:    atoi("RATE_LIMIT_MAX", "100"),
			Window: time.Duration(atoi("RATE_LIMIT_WINDOW_SECONDS", "60")) * time.Second,
		},
		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", "300")) * time.Second,
		Port:     getEnv("SERVER_PORT", "8080"),
	}

	if cfg.RateLimit.Max <= 0 {
		errs = append(errs, "RATE_LIMIT_MAX must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		errs = append(errs, "RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	if cfg.CacheTTL <= 0 {
		errs = append(errs, "CACHE_TTL_SECONDS must be positive")
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, err.Error())
	}
	cfg.LogLevel = level

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not a log level", s)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
