package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidRetention indicates backup.retention is below 1.
	ErrInvalidRetention = errors.New("backup.retention must be >= 1")
)

// PathError describes an invalid path setting.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Field, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	for _, f := range []struct {
		field string
		path  string
	}{
		{"registry_path", cfg.RegistryPath},
		{"clients.code.path", cfg.Clients.Code.Path},
		{"clients.desktop.path", cfg.Clients.Desktop.Path},
	} {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &PathError{Field: f.field, Path: f.path, Err: err})
		}
	}

	if cfg.Backup.Enabled {
		if cfg.Backup.Retention < 1 {
			errs = append(errs, ErrInvalidRetention)
		}
		if err := validatePath(cfg.Backup.Dir); err != nil {
			errs = append(errs, &PathError{Field: "backup.dir", Path: cfg.Backup.Dir, Err: err})
		}
	}

	return errs
}

// validatePath requires a non-empty absolute path without NUL bytes.
func validatePath(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: contains NUL", ErrInvalidPath)
	}
	if !filepath.IsAbs(p) {
		return fmt.Errorf("%w: must be absolute", ErrInvalidPath)
	}
	return nil
}
