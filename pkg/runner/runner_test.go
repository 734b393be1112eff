package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/lint"
	_ "github.com/beylint/beylint/pkg/lint/rules"
	"github.com/beylint/beylint/pkg/parser/csharp"
	"github.com/beylint/beylint/pkg/runner"
)

const dirtyClass = "class Widget {\n    void M()\n    {\n    }\n}\n"

const cleanClass = "class Widget\n{\n    void M()\n    {\n    }\n}\n"

func newTestRunner() *runner.Runner {
	engine := lint.NewEngine(csharp.New(), lint.DefaultRegistry)
	return runner.New(lint.NewPipeline(engine))
}

func TestRunner_LintOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Bad.cs", dirtyClass)
	writeFile(t, root, "Good.cs", cleanClass)
	writeFile(t, root, "sub/AlsoBad.cs", dirtyClass)

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Stats.FilesDiscovered != 3 {
		t.Errorf("FilesDiscovered = %d, want 3", result.Stats.FilesDiscovered)
	}
	if result.Stats.FilesProcessed != 3 {
		t.Errorf("FilesProcessed = %d, want 3", result.Stats.FilesProcessed)
	}
	if result.Stats.FilesWithIssues != 2 {
		t.Errorf("FilesWithIssues = %d, want 2", result.Stats.FilesWithIssues)
	}
	if result.Stats.DiagnosticsTotal != 2 {
		t.Errorf("DiagnosticsTotal = %d, want 2", result.Stats.DiagnosticsTotal)
	}
	if result.Stats.DiagnosticsFixable != 2 {
		t.Errorf("DiagnosticsFixable = %d, want 2", result.Stats.DiagnosticsFixable)
	}
	if result.Stats.FilesModified != 0 {
		t.Errorf("FilesModified = %d, want 0 without fix mode", result.Stats.FilesModified)
	}
	if result.Stats.DiagnosticsBySeverity["info"] != 2 {
		t.Errorf("DiagnosticsBySeverity = %v", result.Stats.DiagnosticsBySeverity)
	}

	if !result.HasIssues() {
		t.Error("HasIssues() = false, want true")
	}
	if result.HasFailures() {
		t.Error("HasFailures() = true, want false for info diagnostics")
	}

	// Outcomes come back in discovery order regardless of worker scheduling.
	want := []string{"Bad.cs", "Good.cs", "sub/AlsoBad.cs"}
	if len(result.Files) != len(want) {
		t.Fatalf("len(Files) = %d, want %d", len(result.Files), len(want))
	}
	for i, outcome := range result.Files {
		rel, relErr := filepath.Rel(root, outcome.Path)
		if relErr != nil {
			t.Fatal(relErr)
		}
		if filepath.ToSlash(rel) != want[i] {
			t.Errorf("Files[%d].Path = %s, want %s", i, rel, want[i])
		}
		if outcome.Error != nil {
			t.Errorf("Files[%d].Error = %v", i, outcome.Error)
		}
	}
}

func TestRunner_FixMode(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	bad := writeFile(t, root, "Bad.cs", dirtyClass)
	good := writeFile(t, root, "Good.cs", cleanClass)

	cfg := config.NewConfig()
	cfg.Fix = true

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Stats.FilesModified != 1 {
		t.Errorf("FilesModified = %d, want 1", result.Stats.FilesModified)
	}
	if result.Stats.DiagnosticsFixed == 0 {
		t.Error("DiagnosticsFixed = 0, want at least one applied edit")
	}

	fixed, err := os.ReadFile(bad)
	if err != nil {
		t.Fatal(err)
	}
	if string(fixed) != cleanClass {
		t.Errorf("fixed content:\n%q\nwant:\n%q", fixed, cleanClass)
	}

	untouched, err := os.ReadFile(good)
	if err != nil {
		t.Fatal(err)
	}
	if string(untouched) != cleanClass {
		t.Errorf("clean file was rewritten:\n%q", untouched)
	}
}

func TestRunner_SeverityPropagates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Bad.cs", dirtyClass)

	sev := string(config.SeverityError)
	cfg := config.NewConfig()
	cfg.Rules["BEY0002"] = config.RuleConfig{Severity: &sev}

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
		Config:     cfg,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if !result.HasFailures() {
		t.Error("HasFailures() = false, want true for error severity")
	}
	if result.Stats.DiagnosticsBySeverity["error"] != 1 {
		t.Errorf("DiagnosticsBySeverity = %v", result.Stats.DiagnosticsBySeverity)
	}
}

func TestRunner_EmptyTree(t *testing.T) {
	t.Parallel()

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Stats.FilesDiscovered != 0 {
		t.Errorf("FilesDiscovered = %d, want 0", result.Stats.FilesDiscovered)
	}
	if len(result.Files) != 0 {
		t.Errorf("Files = %v, want none", result.Files)
	}
	if result.HasIssues() {
		t.Error("HasIssues() = true for an empty run")
	}
}

func TestRunner_SingleWorker(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"A.cs", "B.cs", "C.cs", "D.cs"} {
		writeFile(t, root, name, dirtyClass)
	}

	result, err := newTestRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
		Config:     config.NewConfig(),
		Jobs:       1,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Stats.FilesProcessed != 4 {
		t.Errorf("FilesProcessed = %d, want 4", result.Stats.FilesProcessed)
	}
	if result.Stats.DiagnosticsTotal != 4 {
		t.Errorf("DiagnosticsTotal = %d, want 4", result.Stats.DiagnosticsTotal)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "A.cs", dirtyClass)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner().Run(ctx, runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
		Config:     config.NewConfig(),
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestResult_NilReceiver(t *testing.T) {
	t.Parallel()

	var r *runner.Result
	if r.HasFailures() {
		t.Error("HasFailures() on nil = true")
	}
	if r.HasIssues() {
		t.Error("HasIssues() on nil = true")
	}
}
