package config

import (
	"fmt"
	"time"

	"library-backend/internal/infrastructure/database"
)

// PostgresConfig builds the pgx pool config. Pool timings and retry settings
// are read from the environment here.
func (c *Config) PostgresConfig() (*database.DBConfig, error) {
	maxRetries := getEnvInt("DB_MAX_RETRIES", 5)

	// Parse durations
	maxConnLifetime, err := time.ParseDuration(getEnv("DB_MAX_CONN_LIFETIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONN_LIFETIME: %w", err)
	}

	maxConnIdleTime, err := time.ParseDuration(getEnv("DB_MAX_CONN_IDLE_TIME", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONN_IDLE_TIME: %w", err)
	}

	healthCheckPeriod, err := time.ParseDuration(getEnv("DB_HEALTH_CHECK_PERIOD", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_HEALTH_CHECK_PERIOD: %w", err)
	}

	retryDelay, err := time.ParseDuration(getEnv("DB_RETRY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_RETRY_DELAY: %w", err)
	}

	connectTimeout, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}

	db := c.Database
	return &database.DBConfig{
		URL:               db.URL,
		Host:              db.Host,
		Port:              db.Port,
		Username:          db.User,
		Password:          db.Password,
		DBName:            db.Database,
		SSLMode:           db.SSLMode,
		MaxConns:          int32(db.MaxConns),
		MinConns:          int32(db.MinConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        maxRetries,
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
	}, nil
}

// SQLiteConfig builds the embedded store config.
func (c *Config) SQLiteConfig() *database.SQLiteConfig {
	return &database.SQLiteConfig{
		Path:  c.Database.SQLitePath,
		Debug: c.Database.Debug,
	}
}

// TokenTTL is the JWT lifetime; zero means tokens never expire.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TokenExpiry) * time.Minute
}
