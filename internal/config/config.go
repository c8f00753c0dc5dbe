package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type DatabaseConfig struct {
	Driver string // postgres, sqlite

	// Postgres. URL wins over the individual fields.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int

	// SQLite
	SQLitePath string
	Debug      bool
}

type RedisConfig struct {
	Host     string // empty disables the identity cache
	Password string
	DB       int
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type JWTConfig struct {
	Secret      string
	TokenExpiry int // minutes, 0 = tokens never expire
}

type SecurityConfig struct {
	BcryptCost int
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "4000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			URL:        getEnv("DATABASE_URL", ""),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Database:   getEnv("DB_NAME", "library"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxConns:   getEnvInt("DB_MAX_CONNS", 25),
			MinConns:   getEnvInt("DB_MIN_CONNS", 5),
			SQLitePath: getEnv("SQLITE_PATH", "library.db"),
			Debug:      getEnvBool("DB_DEBUG", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvInt("JWT_TOKEN_EXPIRY", 0),
		},
		Security: SecurityConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.TokenExpiry < 0 {
		return fmt.Errorf("JWT_TOKEN_EXPIRY must not be negative")
	}

	// Production must not run on defaults
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Driver == DriverPostgres && c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD or DATABASE_URL must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
