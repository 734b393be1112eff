package lint

import (
	"context"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/cst"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field (Ctx) rather than passing
// it per method: it is a short-lived parameter object created per rule
// invocation, which keeps the Rule interface to a single Apply method while
// still supporting cancellation via Cancelled().
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *cst.FileSnapshot

	// Root is the construct tree root (convenience alias for File.Root).
	Root *cst.Node

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *cst.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *cst.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Settings returns the layout settings for this run.
func (rc *RuleContext) Settings() config.Settings {
	if rc.Config == nil {
		return config.DefaultSettings()
	}
	return rc.Config.Settings
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}
