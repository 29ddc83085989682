package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration required for the current
// environment is present.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := map[string]string{
		"DB_USER":    cfg.DBUser,
		"DB_NAME":    cfg.DBName,
		"JWT_SECRET": cfg.JWTSecret,
	}
	if IsProduction() {
		required["DB_PASSWORD"] = cfg.DBPassword
	}

	for name, value := range required {
		if value == "" {
			errs = append(errs, fmt.Sprintf("required configuration %s is not set", name))
		}
	}

	if IsProduction() && len(cfg.JWTSecret) > 0 && len(cfg.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
