package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Simplici0/recipecost/internal/logger"
	"github.com/Simplici0/recipecost/internal/money"
)

const (
	defaultDBPath = "./dev.db"
	defaultPort   = "8080"
	defaultEnv    = "development"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath   string
	Port     string
	Env      string
	Locale   money.Mode
	Charts   bool
	LogLevel logger.Level

	// Warnings lists values that were ignored in favor of a default.
	Warnings []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: a missing .env is fine, real deployments inject env vars.
	// godotenv never overwrites variables that are already set.
	_ = godotenv.Load()

	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) Config {
	cfg := Config{
		DBPath:   getenv("DB_PATH"),
		Port:     getenv("PORT"),
		Env:      getenv("APP_ENV"),
		Locale:   money.ModeBR,
		Charts:   true,
		LogLevel: logger.LevelNormal,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}

	if raw := getenv("LOCALE"); raw != "" {
		mode, ok := money.ParseMode(raw)
		if !ok {
			cfg.warnf("LOCALE=%q is not supported, using %q", raw, mode)
		}
		cfg.Locale = mode
	}

	if raw := getenv("CHARTS"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			cfg.warnf("CHARTS=%q is not a boolean, charts stay enabled", raw)
		} else {
			cfg.Charts = enabled
		}
	}

	if raw := getenv("LOG_LEVEL"); raw != "" {
		level, ok := logger.ParseLevel(raw)
		if !ok {
			cfg.warnf("LOG_LEVEL=%q is not supported, using normal", raw)
		}
		cfg.LogLevel = level
	}

	return cfg
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}
