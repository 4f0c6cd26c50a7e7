package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultDatabaseDSN  = "foodgram.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultMediaDir     = "./media"
	defaultStaticBase   = "/media"
	defaultMinCookTime  = "1"
	defaultMinAmount    = "0"
	defaultMaxPageLimit = 100
)

// Config — конфигурация приложения из переменных окружения.
// MinCookingTime и MinIngredientAmount — пороги валидации рецепта.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseDSN string

	JWTSecret string
	JWTTTL    time.Duration

	MediaDir   string
	StaticBase string

	MinCookingTime      int
	MinIngredientAmount int
	MaxPageLimit        int
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", defaultPort)
	cfg.DatabaseDSN = getEnv("DATABASE_URL", defaultDatabaseDSN)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.MediaDir = getEnv("MEDIA_DIR", defaultMediaDir)
	cfg.StaticBase = getEnv("STATIC_BASE", defaultStaticBase)
	cfg.MaxPageLimit = defaultMaxPageLimit

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.MinCookingTime, err = parseIntEnv("MIN_COOKING_TIME", defaultMinCookTime)
	if err != nil {
		return nil, err
	}

	cfg.MinIngredientAmount, err = parseIntEnv("MIN_INGREDIENT_AMOUNT", defaultMinAmount)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.MinCookingTime < 1 {
		return fmt.Errorf("MIN_COOKING_TIME must be >= 1")
	}
	if cfg.MinIngredientAmount < 0 {
		return fmt.Errorf("MIN_INGREDIENT_AMOUNT must be >= 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
