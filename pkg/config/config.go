// Package config defines core configuration types for beylint.
// These types are pure data structures with no dependency on the loader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true for a known severity value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix"`
	Options  map[string]any `yaml:"options"`
}

// Settings holds the indentation and layout configuration shared by every
// analysis component. Immutable for the duration of a run.
type Settings struct {
	// IndentationSize is the width of one indentation step, in columns.
	IndentationSize int `yaml:"indentation_size"`

	// TabSize is the display width of a tab character, in columns.
	TabSize int `yaml:"tab_size"`

	// UseTabs renders indentation steps as tabs instead of spaces.
	UseTabs bool `yaml:"use_tabs"`

	// AllowDoWhileOnClosingBrace permits "} while (cond);" after a
	// do-loop's closing brace.
	AllowDoWhileOnClosingBrace bool `yaml:"allow_do_while_on_closing_brace"`
}

// DefaultSettings returns the default layout settings: 4-space indentation,
// tab width 4, spaces not tabs, do/while exemption off.
func DefaultSettings() Settings {
	return Settings{
		IndentationSize: 4,
		TabSize:         4,
		UseTabs:         false,
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "braces-own-line"
	RuleFormatID       RuleFormat = "id"       // "BEY0002"
	RuleFormatCombined RuleFormat = "combined" // "BEY0002/braces-own-line"
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"
)

// Config is the root configuration structure for beylint.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default"`

	// Settings holds the shared indentation/layout settings.
	Settings Settings `yaml:"settings"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers (0 = NumCPU).
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityInfo),
		Settings:        DefaultSettings(),
		Rules:           make(map[string]RuleConfig),
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
	}
}

// RuleFor returns the configuration for a rule ID, or nil if none is set.
func (c *Config) RuleFor(id string) *RuleConfig {
	if c == nil || c.Rules == nil {
		return nil
	}
	if rc, ok := c.Rules[id]; ok {
		return &rc
	}
	return nil
}
