package rules

import (
	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Brace layout rules
	registry.Register(NewBracePlacementRule()) // BEY0002
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)

	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		rules := lint.DefaultRegistry.Rules()
		infos := make([]config.RuleInfo, 0, len(rules))
		for _, rule := range rules {
			infos = append(infos, config.RuleInfo{
				ID:          rule.ID(),
				Name:        rule.Name(),
				Description: rule.Description(),
				Enabled:     rule.DefaultEnabled(),
				Severity:    rule.DefaultSeverity(),
				Tags:        rule.Tags(),
				CanFix:      rule.CanFix(),
			})
		}
		return infos
	}
}
