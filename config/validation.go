package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that required settings are present. The JWT secret
// is mandatory everywhere; the database password only in production.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "must be set"}
	}
	if IsProduction() && cfg.DBPassword == "" {
		return ValidationError{Field: "DB_PASSWORD", Message: "must be set in production"}
	}
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must be set"}
	}
	return nil
}
