package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLimit indicates an invalid size limit
	ErrInvalidLimit = errors.New("invalid size limit")

	// ErrEmptyStorePath indicates a missing store path
	ErrEmptyStorePath = errors.New("empty store path")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Limits.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("%w: max_file_size cannot be negative, got %d", ErrInvalidLimit, cfg.Limits.MaxFileSize))
	}

	if strings.TrimSpace(cfg.Store.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: store.path is required", ErrEmptyStorePath))
	}

	if cfg.Cache.Capacity < 0 {
		errs = append(errs, fmt.Errorf("%w: capacity cannot be negative, got %d", ErrInvalidCacheSettings, cfg.Cache.Capacity))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
