package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beylint/beylint/pkg/config"
)

// envVarPrefix is the prefix for all beylint environment variables.
const envVarPrefix = "BEYLINT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SEVERITY_DEFAULT": {field: "severity_default", typ: envTypeString},
	"FIX":              {field: "fix", typ: envTypeBool},
	"DRY_RUN":          {field: "dry_run", typ: envTypeBool},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"FORMAT":           {field: "format", typ: envTypeString},
	"INDENT_SIZE":      {field: "settings.indentation_size", typ: envTypeInt},
	"TAB_SIZE":         {field: "settings.tab_size", typ: envTypeInt},
	"USE_TABS":         {field: "settings.use_tabs", typ: envTypeBool},
	"ALLOW_DO_WHILE":   {field: "settings.allow_do_while", typ: envTypeBool},
	"IGNORE":           {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with BEYLINT_ (e.g., BEYLINT_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "severity_default":
		cfg.SeverityDefault = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	case "dry_run":
		cfg.DryRun = value
	case "settings.use_tabs":
		cfg.Settings.UseTabs = value
	case "settings.allow_do_while":
		cfg.Settings.AllowDoWhileOnClosingBrace = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "settings.indentation_size":
		cfg.Settings.IndentationSize = value
	case "settings.tab_size":
		cfg.Settings.TabSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"BEYLINT_SEVERITY_DEFAULT": "Default severity: error, warning, or info",
		"BEYLINT_FIX":              "Enable auto-fix: true or false",
		"BEYLINT_DRY_RUN":          "Dry-run mode: true or false",
		"BEYLINT_JOBS":             "Number of parallel workers (0 = auto)",
		"BEYLINT_FORMAT":           "Output format: text, json, sarif, or diff",
		"BEYLINT_INDENT_SIZE":      "Indentation width in columns",
		"BEYLINT_TAB_SIZE":         "Tab display width in columns",
		"BEYLINT_USE_TABS":         "Indent with tabs: true or false",
		"BEYLINT_ALLOW_DO_WHILE":   "Allow '} while (...);' on the closing brace line: true or false",
		"BEYLINT_IGNORE":           "Comma-separated list of ignore patterns",
	}
}
