package config

import (
	"fmt"
	"strconv"
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

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		fail("SERVER_PORT", "invalid port %q", cfg.ServerPort)
	}
	if cfg.ShutdownTimeout <= 0 {
		fail("SHUTDOWN_TIMEOUT", "must be positive")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			fail("DB_HOST", "required for postgres")
		}
		if cfg.DBName == "" {
			fail("DB_NAME", "required for postgres")
		}
		if cfg.DBUser == "" {
			fail("DB_USER", "required for postgres")
		}
	case "sqlite":
		if cfg.DBPath == "" {
			fail("DB_PATH", "required for sqlite")
		}
	default:
		fail("DB_DRIVER", "unsupported driver %q", cfg.DBDriver)
	}

	if cfg.RateLimitEnabled {
		if cfg.RateLimitRequests <= 0 {
			fail("RATE_LIMIT_REQUESTS", "must be positive")
		}
		if cfg.RateLimitWindow <= 0 {
			fail("RATE_LIMIT_WINDOW", "must be positive")
		}
	}

	if cfg.AuthEnabled {
		if cfg.AuthUsername == "" {
			fail("AUTH_USERNAME", "required when auth is enabled")
		}
		if cfg.AuthPassword == "" {
			fail("AUTH_PASSWORD", "required when auth is enabled")
		}
		if cfg.JWTSecret == "" {
			fail("JWT_SECRET", "required when auth is enabled")
		}
		if cfg.JWTExpiry <= 0 {
			fail("JWT_EXPIRY", "must be positive")
		}
	}

	if !logLevels[strings.ToLower(cfg.LogLevel)] {
		fail("LOG_LEVEL", "unknown level %q", cfg.LogLevel)
	}

	if GetEnvironment() == Production {
		if cfg.DBDriver != "postgres" {
			fail("DB_DRIVER", "production requires postgres")
		}
		if cfg.JWTSecret == DefaultJWTSecret {
			fail("JWT_SECRET", "default secret is not allowed in production")
		}
		if cfg.AuthEnabled && cfg.AuthPassword == DefaultAuthPassword {
			fail("AUTH_PASSWORD", "default password is not allowed in production")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
