package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/beylint/beylint/pkg/config"
)

// ImportResult contains the result of converting an .editorconfig file.
type ImportResult struct {
	// Config is the converted beylint configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original .editorconfig file.
	SourcePath string
}

// ecSection is a parsed .editorconfig section with its header glob.
type ecSection struct {
	pattern    string
	properties map[string]string
}

// ConvertEditorConfig imports layout settings from an .editorconfig file and
// produces a beylint configuration. Only properties relevant to brace layout
// are consumed; all other .editorconfig keys are left for the editor.
func ConvertEditorConfig(path string) (*ImportResult, error) {
	result := &ImportResult{
		SourcePath: path,
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	sections := parseEditorConfig(string(content))

	cfg := config.NewConfig()

	// Apply sections in file order; later sections override earlier ones,
	// matching .editorconfig precedence.
	applied := false
	for _, section := range sections {
		if !sectionAppliesToCSharp(section.pattern) {
			continue
		}
		if applyEditorConfigSection(cfg, section.properties, result) {
			applied = true
		}
	}

	if !applied {
		result.Warnings = append(result.Warnings,
			"no layout properties applicable to C# files were found; using defaults")
	}

	result.Config = cfg
	return result, nil
}

// parseEditorConfig parses INI-style .editorconfig content into sections.
// The preamble (before the first section header) is returned as a section
// with an empty pattern.
func parseEditorConfig(content string) []ecSection {
	var sections []ecSection
	current := ecSection{properties: make(map[string]string)}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if len(current.properties) > 0 || current.pattern != "" {
				sections = append(sections, current)
			}
			current = ecSection{
				pattern:    strings.TrimSpace(line[1 : len(line)-1]),
				properties: make(map[string]string),
			}
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		// .editorconfig values may carry a trailing inline comment
		if idx := strings.IndexAny(value, "#;"); idx > 0 {
			value = strings.TrimSpace(value[:idx])
		}
		current.properties[key] = value
	}

	if len(current.properties) > 0 || current.pattern != "" {
		sections = append(sections, current)
	}

	return sections
}

// sectionAppliesToCSharp returns true if a section header glob matches C#
// source files. The preamble (empty pattern) never carries file properties
// we consume.
func sectionAppliesToCSharp(pattern string) bool {
	if pattern == "" {
		return false
	}
	if pattern == "*" {
		return true
	}

	// Section globs without a slash match against the file name only.
	name := "file.cs"
	if strings.Contains(pattern, "/") {
		name = "src/file.cs"
		pattern = strings.TrimPrefix(pattern, "/")
	}

	matched, err := doublestar.Match(pattern, name)
	if err != nil {
		return false
	}
	return matched
}

// applyEditorConfigSection applies one section's properties to the config.
// Returns true if any property was consumed.
func applyEditorConfigSection(cfg *config.Config, props map[string]string, result *ImportResult) bool {
	applied := false

	if style, ok := props["indent_style"]; ok {
		cfg.Settings.UseTabs = strings.EqualFold(style, "tab")
		applied = true
	}

	if size, ok := props["indent_size"]; ok {
		if strings.EqualFold(size, "tab") {
			// indent_size = tab defers to tab_width
			if width, ok := props["tab_width"]; ok {
				if n, err := strconv.Atoi(width); err == nil && n > 0 {
					cfg.Settings.IndentationSize = n
				}
			}
		} else if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.Settings.IndentationSize = n
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ignoring invalid indent_size %q", size))
		}
		applied = true
	}

	if width, ok := props["tab_width"]; ok {
		if n, err := strconv.Atoi(width); err == nil && n > 0 {
			cfg.Settings.TabSize = n
			applied = true
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ignoring invalid tab_width %q", width))
		}
	}

	if value, ok := props["csharp_new_line_before_open_brace"]; ok {
		applyNewLineBeforeOpenBrace(cfg, value, result)
		applied = true
	}

	if severity, ok := props["dotnet_diagnostic.bey0002.severity"]; ok {
		applyDiagnosticSeverity(cfg, severity, result)
		applied = true
	}

	return applied
}

// applyNewLineBeforeOpenBrace maps the csharp_new_line_before_open_brace
// property onto the brace placement rule.
func applyNewLineBeforeOpenBrace(cfg *config.Config, value string, result *ImportResult) {
	enabled := true
	switch strings.ToLower(value) {
	case "all":
		// Default behavior, rule enabled
	case "none":
		enabled = false
	default:
		// Partial lists like "methods,types" have no per-construct
		// equivalent; enable the rule and note the difference.
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"csharp_new_line_before_open_brace = %q is applied to all constructs", value))
	}

	rc := cfg.Rules["BEY0002"]
	rc.Enabled = &enabled
	cfg.Rules["BEY0002"] = rc
}

// applyDiagnosticSeverity maps a dotnet_diagnostic severity value onto the
// brace placement rule.
func applyDiagnosticSeverity(cfg *config.Config, value string, result *ImportResult) {
	rc := cfg.Rules["BEY0002"]

	switch strings.ToLower(value) {
	case "error":
		sev := string(config.SeverityError)
		rc.Severity = &sev
	case "warning":
		sev := string(config.SeverityWarning)
		rc.Severity = &sev
	case "suggestion":
		sev := string(config.SeverityInfo)
		rc.Severity = &sev
	case "silent", "none":
		disabled := false
		rc.Enabled = &disabled
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("ignoring unknown diagnostic severity %q", value))
		return
	}

	cfg.Rules["BEY0002"] = rc
}

// HasImportableSettings returns true if the .editorconfig file contains at
// least one property that beylint can import.
func HasImportableSettings(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	for _, section := range parseEditorConfig(string(content)) {
		if !sectionAppliesToCSharp(section.pattern) {
			continue
		}
		for key := range section.properties {
			switch key {
			case "indent_style", "indent_size", "tab_width",
				"csharp_new_line_before_open_brace",
				"dotnet_diagnostic.bey0002.severity":
				return true
			}
		}
	}
	return false
}

// GenerateImportHeader returns a header comment for imported configs.
func GenerateImportHeader(sourcePath string) string {
	return fmt.Sprintf(`# beylint configuration
# Imported from: %s
# See: https://github.com/beylint/beylint
`, filepath.Base(sourcePath))
}
