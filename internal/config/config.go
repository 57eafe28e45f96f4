package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatabaseURL is used when DATABASE_URL is unset.
const DefaultDatabaseURL = "sqlite:///inventory.db"

// DefaultCORSOrigin is the frontend allowed to call the API when CORS_ORIGINS is unset.
const DefaultCORSOrigin = "https://myinventory-ten.vercel.app"

// Config holds all runtime configuration read from the environment.
type Config struct {
	DatabaseURL string
	SecretKey   string
	Port        string
	LogLevel    slog.Level
	LogFormat   string
	CORSOrigins []string

	Admin AdminConfig
	Redis RedisConfig
}

// AdminConfig holds the static admin credentials. Both must be non-empty
// for admin login to ever succeed.
type AdminConfig struct {
	Username string
	Password string
}

// Configured reports whether both admin credentials are set.
func (a AdminConfig) Configured() bool {
	return a.Username != "" && a.Password != ""
}

// RedisConfig holds the optional stats cache connection settings.
type RedisConfig struct {
	Addr     string
	URL      string
	Password string
	DB       int
	StatsTTL time.Duration
}

// Enabled reports whether a Redis server was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != "" || r.URL != ""
}

// Load reads a .env file from the working directory (if one exists) and then
// builds a Config from the process environment. Values already present in the
// environment take precedence over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", format)
	}

	ttl, err := time.ParseDuration(getEnv("STATS_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CACHE_TTL: %w", err)
	}

	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		redisDB, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", s, err)
		}
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", DefaultDatabaseURL),
		SecretKey:   os.Getenv("SECRET_KEY"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    level,
		LogFormat:   format,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", DefaultCORSOrigin)),
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			StatsTTL: ttl,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
