package config

import (
	"fmt"
	"strings"
)

// ValidMergePolicies lists accepted mergePolicy values.
var ValidMergePolicies = []string{"skip", "overwrite", "merge"}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate validates the given configuration.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.MergePolicy != "" && !isValidMergePolicy(cfg.MergePolicy) {
		errs = append(errs, ValidationError{
			Field:   "mergePolicy",
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidMergePolicies, ", ")),
		})
	}

	if cfg.TemplatesDir != "" && strings.TrimSpace(cfg.TemplatesDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "templatesDir",
			Message: "must not be whitespace only",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isValidMergePolicy(p string) bool {
	for _, v := range ValidMergePolicies {
		if v == p {
			return true
		}
	}
	return false
}
