package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minProductionSecret = 32
	devJWTSecret        = "skillswap-development-only-secret-change-in-production"
)

var devOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Config параметры запуска сервиса.
type Config struct {
	Env              string
	HTTPPort         string
	DatabaseURL      string
	MigrationsPath   string
	JWTSecret        string
	AccessTokenTTL   time.Duration
	MediaStoragePath string
	MaxUploadSizeMB  int64
	AllowedOrigins   []string
	RateLimitLimit   int64
	RateLimitPeriod  time.Duration
	DBHealthInterval time.Duration
	CountCacheTTL    time.Duration
	Redis            RedisConfig
}

// RedisConfig подключение к Redis. Пустой Addr отключает Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load читает .env (если есть) и переменные окружения.
// Все ошибки разбора возвращаются разом.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env: %v", err)
	}

	var r envReader
	cfg := &Config{
		Env:              r.str("APP_ENV", EnvDevelopment),
		HTTPPort:         r.str("HTTP_PORT", "5000"),
		DatabaseURL:      getDatabaseURL(),
		MigrationsPath:   r.str("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:        r.str("JWT_SECRET", ""),
		AccessTokenTTL:   r.duration("ACCESS_TOKEN_TTL", 7*24*time.Hour),
		MediaStoragePath: r.str("MEDIA_STORAGE_PATH", "./storage/media"),
		MaxUploadSizeMB:  r.int64("MAX_UPLOAD_MB", 5),
		AllowedOrigins:   splitCSV(r.str("CORS_ALLOWED_ORIGINS", "")),
		RateLimitLimit:   r.int64("RATE_LIMIT_LIMIT", 10),
		RateLimitPeriod:  r.duration("RATE_LIMIT_PERIOD", time.Minute),
		DBHealthInterval: r.duration("DB_HEALTH_INTERVAL", 10*time.Second),
		CountCacheTTL:    r.duration("COUNT_CACHE_TTL", 30*time.Second),
		Redis: RedisConfig{
			Addr:     r.str("REDIS_URL", ""),
			Password: r.str("REDIS_PASSWORD", ""),
			DB:       int(r.int64("REDIS_DB", 0)),
		},
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize проверяет обязательные для production значения и подставляет dev-дефолты.
func (c *Config) finalize() error {
	if c.IsProduction() {
		if len(c.JWTSecret) < minProductionSecret {
			return fmt.Errorf("config: JWT_SECRET must be at least %d characters in production", minProductionSecret)
		}
		if len(c.AllowedOrigins) == 0 {
			return errors.New("config: CORS_ALLOWED_ORIGINS is required in production")
		}
		return nil
	}

	if c.JWTSecret == "" {
		c.JWTSecret = devJWTSecret
		log.Printf("config: WARNING - JWT_SECRET не задан, используется dev-значение")
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = append([]string(nil), devOrigins...)
	}
	return nil
}

// envReader читает переменные и копит ошибки разбора.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	return getEnv(key, fallback)
}

func (r *envReader) int64(key string, fallback int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("config: %s: %w", key, err))
		return fallback
	}
	return n
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("config: %s: %w", key, err))
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getDatabaseURL берёт DATABASE_URL или собирает DSN из POSTGRESQL_*.
func getDatabaseURL() string {
	if dsn := getEnv("DATABASE_URL", ""); dsn != "" {
		return dsn
	}

	host := getEnv("POSTGRESQL_HOST", "localhost")
	user := getEnv("POSTGRESQL_USER", "postgres")
	password := getEnv("POSTGRESQL_PASSWORD", "postgres")
	name := getEnv("POSTGRESQL_DBNAME", "skillswap")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + getEnv("POSTGRESQL_PORT", "5432"),
		Path:     "/" + name,
		RawQuery: "sslmode=disable&connect_timeout=10",
	}
	return u.String()
}
