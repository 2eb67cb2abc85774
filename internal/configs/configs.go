package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	JWTSecret              string
	JWTIssuer              string
	TokenTTL               time.Duration
	BcryptCost             int
	RateLimit              int
	RedisAddr              string
	RedisRateLimitPrefix   string
	LogLevel               string
	LogFormat              string
	ShutdownTimeoutSeconds int
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	ttlHours, err := getEnvAsInt("TOKEN_TTL_HOURS", 7*24)
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := getEnvAsInt("BCRYPT_COST", 10)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		JWTIssuer:              getEnv("JWT_ISSUER", "task-dashboard"),
		TokenTTL:               time.Duration(ttlHours) * time.Hour,
		BcryptCost:             bcryptCost,
		RateLimit:              rateLimit,
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisRateLimitPrefix:   getEnv("REDIS_RATE_LIMIT_PREFIX", "rl"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
		ShutdownTimeoutSeconds: shutdownTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.AppURL == "" {
		return errors.New("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if cfg.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be greater than 0")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return errors.New("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}
