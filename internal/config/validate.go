package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

// Validate checks the configuration for values the server cannot start with.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if c.Server.SessionTTL <= 0 {
		errs = append(errs, errors.New("server.session_ttl must be positive"))
	}

	c.Solver.Opening = strings.ToLower(strings.TrimSpace(c.Solver.Opening))
	if c.Solver.Opening != "" && !solver.IsWord(c.Solver.Opening) {
		errs = append(errs, fmt.Errorf("solver.opening %q is not a five-letter word", c.Solver.Opening))
	}
	if c.Solver.MaxRows < 1 {
		errs = append(errs, fmt.Errorf("solver.max_rows must be at least 1, got %d", c.Solver.MaxRows))
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Auth.SessionSecret == "" {
		errs = append(errs, errors.New("auth.session_secret is required"))
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
