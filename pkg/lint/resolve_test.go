package lint_test

import (
	"testing"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/lint"
)

func TestResolveRules_Defaults(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(&stubRule{BaseRule: lint.NewBaseRule("BEY0002", "braces-own-line", "", nil, true)})

	resolved := lint.ResolveRules(r, config.NewConfig())
	if len(resolved) != 1 {
		t.Fatalf("resolved = %d rules", len(resolved))
	}

	rr := resolved[0]
	if !rr.Enabled {
		t.Error("default-enabled rule should resolve enabled")
	}
	if rr.Severity != config.SeverityInfo {
		t.Errorf("severity = %q, want info", rr.Severity)
	}
	if rr.AutoFix {
		t.Error("auto-fix should be off while cfg.Fix is false")
	}
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(&stubRule{BaseRule: lint.NewBaseRule("BEY0002", "braces-own-line", "", nil, true)})

	resolved := lint.ResolveRules(r, nil)
	if len(resolved) != 1 {
		t.Fatalf("resolved = %d rules", len(resolved))
	}
	if !resolved[0].AutoFix {
		t.Error("nil config should leave the rule's fix capability intact")
	}
}

func TestResolveRules_DisableViaCLI(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(&stubRule{BaseRule: lint.NewBaseRule("BEY0002", "braces-own-line", "", nil, true)})

	cfg := config.NewConfig()
	cfg.DisableRules = []string{"BEY0002"}

	if resolved := lint.ResolveRules(r, cfg); len(resolved) != 0 {
		t.Errorf("disabled rule resolved: %+v", resolved)
	}
}

func TestResolveRules_RuleConfigOverrides(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(&stubRule{BaseRule: lint.NewBaseRule("BEY0002", "braces-own-line", "", nil, true)})

	enabled := true
	sev := "warning"
	noFix := false

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.Rules["BEY0002"] = config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
		AutoFix:  &noFix,
	}

	resolved := lint.ResolveRules(r, cfg)
	if len(resolved) != 1 {
		t.Fatalf("resolved = %d rules", len(resolved))
	}

	rr := resolved[0]
	if rr.Severity != config.SeverityWarning {
		t.Errorf("severity = %q, want warning", rr.Severity)
	}
	if rr.AutoFix {
		t.Error("auto_fix: false in rule config should win over cfg.Fix")
	}
	if rr.Config == nil {
		t.Error("rule config should be attached")
	}
}

func TestResolveRules_FixRulesFilter(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(&stubRule{BaseRule: lint.NewBaseRule("BEY0002", "braces-own-line", "", nil, true)})
	r.Register(&stubRule{BaseRule: lint.NewBaseRule("BEY0003", "other", "", nil, true)})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.FixRules = []string{"BEY0002"}

	resolved := lint.ResolveRules(r, cfg)
	if len(resolved) != 2 {
		t.Fatalf("resolved = %d rules", len(resolved))
	}

	for _, rr := range resolved {
		switch rr.Rule.ID() {
		case "BEY0002":
			if !rr.AutoFix {
				t.Error("BEY0002 should keep auto-fix")
			}
		case "BEY0003":
			if rr.AutoFix {
				t.Error("BEY0003 should lose auto-fix under the filter")
			}
		}
	}
}

func TestResolveRules_EnableOverridesDefault(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(&stubRule{BaseRule: lint.NewBaseRule("BEY0002", "braces-own-line", "", nil, false)})

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"BEY0002"}

	resolved := lint.ResolveRules(r, cfg)
	if len(resolved) != 1 || !resolved[0].Enabled {
		t.Error("explicitly enabled rule should resolve enabled")
	}
}
