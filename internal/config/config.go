package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Identity IdentityConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// IdentityConfig points at the hosted auth API of the external store.
// Mode "local" switches to the Postgres-backed credential provider,
// used for development and tests.
type IdentityConfig struct {
	Mode             string
	BaseURL          string
	APIKey           string
	ResetRedirectURL string
}

const (
	IdentityModeHosted = "hosted"
	IdentityModeLocal  = "local"

	defaultTokenTTL = 30 * time.Minute
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "medhasmind-api"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8000"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE", "require"),

		ConnectTimeout:      durationEnv("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        int32Env("DB_POOL_MAX_CONNS", 0),
		PoolMinConns:        int32Env("DB_POOL_MIN_CONNS", 0),
		PoolMaxConnLifetime: durationEnv("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime: durationEnv("DB_POOL_MAX_CONN_IDLE_TIME", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET_KEY"),
		ExpiresIn: durationEnv("JWT_ACCESS_TOKEN_EXPIRES_IN", defaultTokenTTL),
	}

	cfg.Identity = IdentityConfig{
		Mode:             opt("IDENTITY_MODE", IdentityModeHosted),
		BaseURL:          strings.TrimSpace(os.Getenv("IDENTITY_BASE_URL")),
		APIKey:           strings.TrimSpace(os.Getenv("IDENTITY_API_KEY")),
		ResetRedirectURL: opt("IDENTITY_RESET_REDIRECT_URL", "http://localhost:3000/reset-password"),
	}

	if cfg.Identity.Mode == IdentityModeHosted && cfg.Identity.BaseURL == "" {
		missing = append(missing, "IDENTITY_BASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func int32Env(key string, fallback int32) int32 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		return fallback
	}
	return int32(n)
}
