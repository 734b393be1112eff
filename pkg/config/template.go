package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts)
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# beylint configuration
# See: https://github.com/beylint/beylint

# Default severity for all rules: error, warning, or info
# severity_default: info

# Indentation and layout settings
settings:
  indentation_size: 4
  tab_size: 4
  use_tabs: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "**/bin/**"
#   - "**/obj/**"

# Rule-specific configuration
# rules:
#   BEY0002:
#     enabled: true
#     severity: warning
#     options:
#       allow-do-while-on-closing-brace: false
`)

	if opts.Format == "json" {
		return templateToJSON()
	}

	return buf.Bytes(), nil
}

// generateFullTemplate creates a full template with all rules documented.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# beylint configuration - Full Template
# See: https://github.com/beylint/beylint
#
# This template includes all available rules with their default settings.
# Uncomment and modify settings as needed.

# Default severity for all rules: error, warning, or info
severity_default: info

# Indentation and layout settings
settings:
  # Width of one indentation step, in columns
  indentation_size: 4
  # Display width of a tab character, in columns
  tab_size: 4
  # Indent with tabs instead of spaces
  use_tabs: false
  # Permit "} while (cond);" on the do-loop's closing brace line
  allow_do_while_on_closing_brace: false

# File patterns to ignore (glob patterns)
ignore:
  - "**/bin/**"
  - "**/obj/**"

# Rules to explicitly enable (overrides defaults)
# enable_rules:
#   - BEY0002

# Rules to explicitly disable
# disable_rules:
#   - BEY0002

# Rule-specific configuration
rules:
`)

	// Get rule information
	rules := getRuleInfos()

	// Filter by IncludeRules if specified
	if len(opts.IncludeRules) > 0 {
		includeSet := make(map[string]bool)
		for _, id := range opts.IncludeRules {
			includeSet[id] = true
		}
		filtered := make([]RuleInfo, 0)
		for _, r := range rules {
			if includeSet[r.ID] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	// Sort by ID
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	// Write each rule
	for _, rule := range rules {
		buf.WriteString(fmt.Sprintf("\n  # %s: %s\n", rule.ID, rule.Name))
		buf.WriteString(fmt.Sprintf("  # %s\n", wrapComment(rule.Description, commentWrapWidth)))
		if len(rule.Tags) > 0 {
			buf.WriteString(fmt.Sprintf("  # Tags: %s\n", strings.Join(rule.Tags, ", ")))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		buf.WriteString(fmt.Sprintf("  %s:\n", rule.ID))
		buf.WriteString(fmt.Sprintf("    enabled: %t\n", rule.Enabled))
		buf.WriteString(fmt.Sprintf("    severity: %s\n", rule.Severity))
		buf.WriteString("    # options:\n")
		buf.WriteString("    #   key: value\n")
	}

	if opts.Format == "json" {
		return templateToJSON()
	}

	return buf.Bytes(), nil
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}

	// Fallback to a static list of known rules
	return []RuleInfo{
		{
			ID: "BEY0002", Name: "braces-own-line", Enabled: true, Severity: SeverityInfo,
			Description: "Braces owning a multi-line construct must be placed on their own line",
			Tags:        []string{"layout", "braces"}, CanFix: true,
		},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the template defaults as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"severity_default": "info",
		"settings": map[string]any{
			"indentation_size": 4,
			"tab_size":         4,
			"use_tabs":         false,
		},
		"ignore": []string{"**/bin/**", "**/obj/**"},
	}

	rulesMap := make(map[string]any)
	for _, r := range getRuleInfos() {
		rulesMap[r.ID] = map[string]any{
			"enabled":  r.Enabled,
			"severity": string(r.Severity),
		}
	}
	cfg["rules"] = rulesMap

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}
