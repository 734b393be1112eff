package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beylint/beylint/internal/cli"
)

// testSourceWithBraceViolation has the if-block's open brace sharing a line
// with the condition while the block spans multiple lines.
const testSourceWithBraceViolation = `class Widget
{
    void Render() {
        Draw();
    }
}
`

// testSourceClean follows Allman layout throughout.
const testSourceClean = `class Widget
{
    void Render()
    {
        Draw();
    }
}
`

func writeLintFixture(t *testing.T, content string) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()
	csFile := filepath.Join(tmpDir, "Widget.cs")
	require.NoError(t, os.WriteFile(csFile, []byte(content), 0644))

	cfgFile := filepath.Join(tmpDir, ".beylint.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("severity_default: info\n"), 0644))

	return csFile, cfgFile
}

// TestIntegration_RuleFormatFlag tests the --rule-format flag with different formats.
func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	csFile, cfgFile := writeLintFixture(t, testSourceWithBraceViolation)

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "format name shows rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"braces-own-line"},
			wantNotContain: []string{"BEY0002/"},
		},
		{
			name:           "format id shows rule ID only",
			ruleFormat:     "id",
			wantContains:   []string{"BEY0002"},
			wantNotContain: []string{"braces-own-line"},
		},
		{
			name:           "format combined shows both ID and name",
			ruleFormat:     "combined",
			wantContains:   []string{"BEY0002/braces-own-line"},
			wantNotContain: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(info)

			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)

			cmd.SetArgs([]string{
				"lint",
				"--config", cfgFile,
				"--rule-format", tt.ruleFormat,
				"--no-context",
				"--color", "never",
				csFile,
			})

			_ = cmd.Execute() //nolint:errcheck // Ignore error - we expect lint issues

			output := stdout.String() + stderr.String()

			for _, want := range tt.wantContains {
				assert.Contains(t, output, want,
					"output should contain %q for rule-format=%s", want, tt.ruleFormat)
			}

			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, output, notWant,
					"output should not contain %q for rule-format=%s", notWant, tt.ruleFormat)
			}
		})
	}
}

// TestIntegration_ConfigWithRuleNames tests that config files can use rule names.
func TestIntegration_ConfigWithRuleNames(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	csFile := filepath.Join(tmpDir, "Widget.cs")
	require.NoError(t, os.WriteFile(csFile, []byte(testSourceWithBraceViolation), 0644))

	// Disable the rule by name
	configContent := `
rules:
  braces-own-line:
    enabled: false
`
	configFile := filepath.Join(tmpDir, ".beylint.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", configFile,
		"--no-context",
		"--color", "never",
		csFile,
	})

	err := cmd.Execute()
	require.NoError(t, err, "all rules disabled, lint should succeed")

	output := stdout.String() + stderr.String()

	assert.NotContains(t, output, "braces-own-line",
		"disabled rule should not appear in output")
	assert.NotContains(t, output, "BEY0002",
		"disabled rule should not appear in output")
}

// TestIntegration_ConfigWithRuleID tests that config files work with rule IDs.
func TestIntegration_ConfigWithRuleID(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	csFile := filepath.Join(tmpDir, "Widget.cs")
	require.NoError(t, os.WriteFile(csFile, []byte(testSourceWithBraceViolation), 0644))

	configContent := `
rules:
  BEY0002:
    enabled: false
`
	configFile := filepath.Join(tmpDir, ".beylint.yml")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", configFile,
		"--no-context",
		"--color", "never",
		csFile,
	})

	err := cmd.Execute()
	require.NoError(t, err)

	output := stdout.String() + stderr.String()
	assert.NotContains(t, output, "BEY0002",
		"disabled rule should not appear in output")
}

// TestIntegration_DisableFlag tests the --disable flag with a rule ID.
func TestIntegration_DisableFlag(t *testing.T) {
	t.Parallel()

	csFile, cfgFile := writeLintFixture(t, testSourceWithBraceViolation)

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--disable", "BEY0002",
		"--no-context",
		"--color", "never",
		csFile,
	})

	err := cmd.Execute()
	require.NoError(t, err)

	output := stdout.String() + stderr.String()
	assert.NotContains(t, output, "BEY0002",
		"disabled rule should not appear in output")
}

// TestIntegration_CleanFileSucceeds tests that a clean file produces no issues.
func TestIntegration_CleanFileSucceeds(t *testing.T) {
	t.Parallel()

	csFile, cfgFile := writeLintFixture(t, testSourceClean)

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--no-context",
		"--color", "never",
		csFile,
	})

	err := cmd.Execute()
	require.NoError(t, err, "clean file should lint without issues")
}

// TestIntegration_JSONOutputIncludesBothIDAndName tests that JSON output includes both.
func TestIntegration_JSONOutputIncludesBothIDAndName(t *testing.T) {
	t.Parallel()

	csFile, cfgFile := writeLintFixture(t, testSourceWithBraceViolation)

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--format", "json",
		"--color", "never",
		csFile,
	})

	_ = cmd.Execute() //nolint:errcheck // Ignore error - we expect lint issues

	output := stdout.String()

	assert.Contains(t, output, `"ruleId"`,
		"JSON output should include ruleId field")
	assert.Contains(t, output, `"ruleName"`,
		"JSON output should include ruleName field")
	assert.Contains(t, output, `"BEY0002"`,
		"JSON output should include the rule ID value")
	assert.Contains(t, output, `"braces-own-line"`,
		"JSON output should include the rule name value")
}

// TestIntegration_FixDryRun tests that --fix --dry-run reports without rewriting.
func TestIntegration_FixDryRun(t *testing.T) {
	t.Parallel()

	csFile, cfgFile := writeLintFixture(t, testSourceWithBraceViolation)

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--fix",
		"--dry-run",
		"--no-context",
		"--color", "never",
		csFile,
	})

	_ = cmd.Execute() //nolint:errcheck // Ignore error - we expect lint issues

	after, err := os.ReadFile(csFile)
	require.NoError(t, err)
	assert.Equal(t, testSourceWithBraceViolation, string(after),
		"dry-run must not modify the file")
}

// TestIntegration_FixRewritesFile tests that --fix rewrites the violation.
func TestIntegration_FixRewritesFile(t *testing.T) {
	t.Parallel()

	csFile, cfgFile := writeLintFixture(t, testSourceWithBraceViolation)

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--fix",
		"--no-context",
		"--color", "never",
		csFile,
	})

	_ = cmd.Execute() //nolint:errcheck // Exit status reflects the finding, not the fix

	after, err := os.ReadFile(csFile)
	require.NoError(t, err)
	assert.Equal(t, testSourceClean, string(after),
		"fix should move the open brace to its own line")
}

// TestIntegration_RulesCommandWithFormat tests that the rules command accepts --rule-format.
func TestIntegration_RulesCommandWithFormat(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	tests := []struct {
		name       string
		ruleFormat string
	}{
		{name: "format name", ruleFormat: "name"},
		{name: "format id", ruleFormat: "id"},
		{name: "format combined", ruleFormat: "combined"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(info)

			var stdout, stderr bytes.Buffer
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs([]string{
				"rules",
				"--rule-format", tt.ruleFormat,
			})

			err := cmd.Execute()
			require.NoError(t, err, "rules command should succeed with --rule-format=%s", tt.ruleFormat)
		})
	}
}

// TestIntegration_DefaultRuleFormat tests that the default rule format is "name".
func TestIntegration_DefaultRuleFormat(t *testing.T) {
	t.Parallel()

	csFile, cfgFile := writeLintFixture(t, testSourceWithBraceViolation)

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"lint",
		"--config", cfgFile,
		"--no-context",
		"--color", "never",
		csFile,
	})

	_ = cmd.Execute() //nolint:errcheck // Ignore error - we expect lint issues

	output := stdout.String() + stderr.String()

	assert.Contains(t, output, "braces-own-line",
		"default format should show rule name")
}
