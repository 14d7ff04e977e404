package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional; rate limiting is disabled without it)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// JWT configuration
	JWTSecret string

	// MigrationsDir points at the SQL migration files
	MigrationsDir string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secret files in production. Defaults suit local development.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    getValue("SERVER_PORT", "8080"),
		ServerHost:    getValue("SERVER_HOST", "0.0.0.0"),
		DBHost:        getValue("DB_HOST", "localhost"),
		DBPort:        getValue("DB_PORT", "5432"),
		DBUser:        getValue("DB_USER", "postgres"),
		DBPassword:    getValue("DB_PASSWORD", ""),
		DBName:        getValue("DB_NAME", "tastebook"),
		DBSSLMode:     getValue("DB_SSL_MODE", "disable"),
		RedisHost:     getValue("REDIS_HOST", ""),
		RedisPort:     getValue("REDIS_PORT", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", ""),
		JWTSecret:     getValue("JWT_SECRET", ""),
		MigrationsDir: getValue("MIGRATIONS_DIR", "migrations"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue reads an environment variable, then the matching Docker secret,
// then falls back to the default.
func getValue(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
