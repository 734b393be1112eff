package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beylint/beylint/pkg/config"
	_ "github.com/beylint/beylint/pkg/lint/rules" // Register rules
)

func (o LoadOptions) load(ctx context.Context) (*LoadResult, error) {
	return Load(ctx, o)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	// Create temp directory with no config files
	tmpDir := t.TempDir()

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEditorConfig: true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	result, err := opts.load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	// Check defaults are applied
	if result.Config.Settings.IndentationSize != 4 {
		t.Errorf("expected indentation size 4, got %d", result.Config.Settings.IndentationSize)
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
settings:
  indentation_size: 2
  use_tabs: true
rules:
  BEY0002:
    enabled: false
`
	configPath := filepath.Join(tmpDir, ".beylint.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEditorConfig: true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	result, err := opts.load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Settings.IndentationSize != 2 {
		t.Errorf("expected indentation size 2, got %d", result.Config.Settings.IndentationSize)
	}
	if !result.Config.Settings.UseTabs {
		t.Error("expected use_tabs true")
	}

	rc, ok := result.Config.Rules["BEY0002"]
	if !ok {
		t.Fatal("expected BEY0002 in rules")
	}
	if rc.Enabled == nil || *rc.Enabled {
		t.Error("expected BEY0002 disabled")
	}

	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != configPath {
		t.Errorf("LoadedFrom = %v, want [%s]", result.LoadedFrom, configPath)
	}
}

func TestLoad_RuleNameNormalization(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
rules:
  braces-own-line:
    severity: error
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".beylint.yml"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEditorConfig: true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	result, err := opts.load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rc, ok := result.Config.Rules["BEY0002"]
	if !ok {
		t.Fatal("expected name to normalize to BEY0002")
	}
	if rc.Severity == nil || *rc.Severity != "error" {
		t.Error("expected severity error")
	}
}

func TestLoad_CLIPrecedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
settings:
  indentation_size: 2
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".beylint.yml"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cliCfg := &config.Config{}
	cliCfg.Settings.IndentationSize = 8
	cliCfg.Fix = true

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEditorConfig: true,
		IgnoreEnv:          true,
		NonInteractive:     true,
		CLIConfig:          cliCfg,
	}

	result, err := opts.load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Settings.IndentationSize != 8 {
		t.Errorf("CLI flag should win: got indentation size %d", result.Config.Settings.IndentationSize)
	}
	if !result.Config.Fix {
		t.Error("expected fix enabled from CLI")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
severity_default: fatal
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".beylint.yml"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEditorConfig: true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	_, err := opts.load(ctx)
	if err == nil {
		t.Fatal("expected validation error for invalid severity")
	}
	if !strings.Contains(err.Error(), "severity") {
		t.Errorf("error should mention severity: %v", err)
	}
}

func TestLoad_EditorConfigWarning(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	ecContent := `
[*.cs]
indent_size = 2
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".editorconfig"), []byte(ecContent), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:         tmpDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}

	result, err := opts.load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "beylint migrate") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a migrate hint warning, got %v", result.Warnings)
	}
}

func TestFindProjectConfig_UpwardSearch(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "src", "nested")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(tmpDir, ".beylint.yaml")
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectConfig(context.Background(), subDir)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != configPath {
		t.Errorf("got %q, want %q", found, configPath)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Config above the VCS root must not be found
	if err := os.WriteFile(filepath.Join(tmpDir, ".beylint.yml"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	repoDir := filepath.Join(tmpDir, "repo")
	if err := os.MkdirAll(filepath.Join(repoDir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectConfig(context.Background(), repoDir)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("expected no config past VCS root, got %q", found)
	}
}

func TestMerge_RuleOptions(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Rules["BEY0002"] = config.RuleConfig{
		Options: map[string]any{"allow-do-while-on-closing-brace": false},
	}

	enabled := false
	override := config.NewConfig()
	override.Rules["BEY0002"] = config.RuleConfig{
		Enabled: &enabled,
		Options: map[string]any{"allow-do-while-on-closing-brace": true},
	}

	merged := merge(base, override)

	rc := merged.Rules["BEY0002"]
	if rc.Enabled == nil || *rc.Enabled {
		t.Error("override enabled=false should win")
	}
	if rc.Options["allow-do-while-on-closing-brace"] != true {
		t.Error("override option should win")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BEYLINT_INDENT_SIZE", "3")
	t.Setenv("BEYLINT_USE_TABS", "true")
	t.Setenv("BEYLINT_FORMAT", "json")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Settings.IndentationSize != 3 {
		t.Errorf("expected indentation size 3, got %d", cfg.Settings.IndentationSize)
	}
	if !cfg.Settings.UseTabs {
		t.Error("expected use_tabs true")
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Format)
	}
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	t.Setenv("BEYLINT_JOBS", "lots")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err == nil {
		t.Fatal("expected error for invalid integer")
	}
}

func TestValidate_Settings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Settings.IndentationSize = -1

	result := Validate(cfg)
	if result.Valid() {
		t.Fatal("expected validation error for negative indentation size")
	}
}

func TestValidate_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["BEY9999"] = config.RuleConfig{}

	result := Validate(cfg)
	if !result.Valid() {
		t.Fatalf("unknown rule should warn, not error: %v", result.Errors)
	}
	if !result.HasWarnings() {
		t.Error("expected a warning for unknown rule")
	}
}

func TestValidate_BadIgnorePattern(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"src/[unclosed"}

	result := Validate(cfg)
	if result.Valid() {
		t.Fatal("expected validation error for malformed glob")
	}
}
