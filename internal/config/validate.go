package config

import (
	"errors"
	"fmt"

	"cinetree/internal/films"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateActors(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must list at least one container format")
	}
	if _, err := films.CompilePattern(c.Scan.Pattern); err != nil {
		return fmt.Errorf("scan.pattern: %w", err)
	}
	return nil
}

func (c *Config) validateLookup() error {
	if c.Lookup.TimeoutSeconds < 1 {
		return errors.New("lookup.timeout_seconds must be positive")
	}
	if c.Lookup.RetryAttempts < 1 {
		return errors.New("lookup.retry_attempts must be positive")
	}
	return nil
}

func (c *Config) validateActors() error {
	if c.Actors.MinRating < 0 || c.Actors.MinRating > 10 {
		return errors.New("actors.min_rating must be between 0 and 10")
	}
	if c.Actors.MaxPages < 1 {
		return errors.New("actors.max_pages must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
