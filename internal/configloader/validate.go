package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.BEY0002.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownSeverities lists valid severity values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSeverities = map[string]bool{
	"error":   true,
	"warning": true,
	"info":    true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:  true,
	config.FormatJSON:  true,
	config.FormatSARIF: true,
	config.FormatDiff:  true,
}

// knownRuleFormats lists valid rule identifier formats.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownRuleFormats = map[config.RuleFormat]bool{
	config.RuleFormatName:     true,
	config.RuleFormatID:       true,
	config.RuleFormatCombined: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	// Validate severity_default
	if cfg.SeverityDefault != "" && !knownSeverities[cfg.SeverityDefault] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "severity_default",
			Value:   cfg.SeverityDefault,
			Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault),
		})
	}

	// Validate format
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif, diff", cfg.Format),
		})
	}

	// Validate rule identifier format
	if cfg.RuleFormat != "" && !knownRuleFormats[cfg.RuleFormat] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "rule_format",
			Value:   cfg.RuleFormat,
			Message: fmt.Sprintf("invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat),
		})
	}

	// Validate jobs
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	// Validate layout settings
	validateSettings(cfg, result)

	// Validate rules
	validateRules(cfg, result)

	// Validate ignore patterns
	validateIgnorePatterns(cfg, result)

	return result
}

// validateSettings checks the indentation and layout settings.
func validateSettings(cfg *config.Config, result *ValidationResult) {
	if cfg.Settings.IndentationSize < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "settings.indentation_size",
			Value:   cfg.Settings.IndentationSize,
			Message: "indentation_size must be >= 0",
		})
	}
	if cfg.Settings.TabSize < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "settings.tab_size",
			Value:   cfg.Settings.TabSize,
			Message: "tab_size must be >= 0",
		})
	}
	if cfg.Settings.IndentationSize > 16 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "settings.indentation_size",
			Value:   cfg.Settings.IndentationSize,
			Message: fmt.Sprintf("indentation_size %d is unusually large", cfg.Settings.IndentationSize),
		})
	}
}

// validateRules checks rule configurations for errors and warnings.
func validateRules(cfg *config.Config, result *ValidationResult) {
	registry := lint.DefaultRegistry

	for ruleID, ruleCfg := range cfg.Rules {
		// Check if rule exists in registry
		if _, exists := registry.Get(ruleID); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + ruleID,
				Value:   ruleID,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", ruleID),
			})
		}

		// Validate rule severity
		if ruleCfg.Severity != nil && !knownSeverities[*ruleCfg.Severity] {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "rules." + ruleID + ".severity",
				Value:   *ruleCfg.Severity,
				Message: fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: "invalid glob pattern",
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return knownSeverities[s]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
