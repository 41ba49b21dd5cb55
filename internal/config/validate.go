package config

import (
	"fmt"
	"time"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for structural and semantic errors. It returns a
// slice of all validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Edit.MaxFileSize < 0 {
		errs = append(errs, ValidationError{Field: "edit.max_file_size", Message: "must not be negative"})
	}
	if cfg.Edit.MinConfidence < 0 || cfg.Edit.MinConfidence > 1 {
		errs = append(errs, ValidationError{Field: "edit.min_confidence", Message: "must be between 0 and 1"})
	}
	if cfg.Edit.BackupSuffix == cfg.Edit.RejectSuffix {
		errs = append(errs, ValidationError{
			Field:   "edit.reject_suffix",
			Message: fmt.Sprintf("must differ from backup_suffix %q", cfg.Edit.BackupSuffix),
		})
	}
	if cfg.Test.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Test.Timeout); err != nil {
			errs = append(errs, ValidationError{
				Field:   "test.timeout",
				Message: fmt.Sprintf("invalid duration %q", cfg.Test.Timeout),
			})
		}
	}
	return errs
}
