package lint_test

import (
	"testing"

	"github.com/beylint/beylint/pkg/lint"
	_ "github.com/beylint/beylint/pkg/lint/rules"
)

func newTestRule(id, name string) lint.Rule {
	return &stubRule{BaseRule: lint.NewBaseRule(id, name, "desc", []string{"test"}, false)}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(newTestRule("BEY0002", "braces-own-line"))

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	byID, ok := r.Get("BEY0002")
	if !ok || byID.Name() != "braces-own-line" {
		t.Error("lookup by ID failed")
	}

	byName, ok := r.Get("braces-own-line")
	if !ok || byName.ID() != "BEY0002" {
		t.Error("lookup by name failed")
	}

	if _, ok := r.Get("BEY9999"); ok {
		t.Error("unknown key should not resolve")
	}
}

func TestRegistry_GetByID(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(newTestRule("BEY0002", "braces-own-line"))

	if _, ok := r.GetByID("BEY0002"); !ok {
		t.Error("GetByID should resolve the ID")
	}
	if _, ok := r.GetByID("braces-own-line"); ok {
		t.Error("GetByID must not resolve names")
	}
}

func TestRegistry_ReplaceOnSameID(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(newTestRule("BEY0002", "old-name"))
	r.Register(newTestRule("BEY0002", "new-name"))

	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1 after replacement", r.Len())
	}
	rule, _ := r.Get("BEY0002")
	if rule.Name() != "new-name" {
		t.Errorf("Name = %q, want new-name", rule.Name())
	}
}

func TestRegistry_RulesSortedByID(t *testing.T) {
	t.Parallel()

	r := lint.NewRegistry()
	r.Register(newTestRule("BEY0003", "c"))
	r.Register(newTestRule("BEY0001", "a"))
	r.Register(newTestRule("BEY0002", "b"))

	rules := r.Rules()
	if len(rules) != 3 {
		t.Fatalf("Rules = %d", len(rules))
	}
	for i, want := range []string{"BEY0001", "BEY0002", "BEY0003"} {
		if rules[i].ID() != want {
			t.Errorf("rules[%d] = %s, want %s", i, rules[i].ID(), want)
		}
	}
}

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	t.Parallel()

	rule, ok := lint.DefaultRegistry.Get("BEY0002")
	if !ok {
		t.Fatal("BEY0002 not registered in the default registry")
	}
	if rule.Name() != "braces-own-line" {
		t.Errorf("Name = %q", rule.Name())
	}
	if !rule.CanFix() {
		t.Error("BEY0002 should be fixable")
	}
}
