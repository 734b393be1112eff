package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beylint/beylint/internal/configloader"
	"github.com/beylint/beylint/internal/logging"
	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/lint"
	_ "github.com/beylint/beylint/pkg/lint/rules" // Register built-in rules
	csharpparser "github.com/beylint/beylint/pkg/parser/csharp"
	"github.com/beylint/beylint/pkg/reporter"
	"github.com/beylint/beylint/pkg/runner"
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

type lintFlags struct {
	format       string
	ignore       []string
	enable       []string
	disable      []string
	fixRules     []string
	strict       bool
	noContext    bool
	compact      bool
	ruleFormat   string
	indentSize   int
	tabSize      int
	useTabs      bool
	allowDoWhile bool
	noGitignore  bool
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint C# files for brace placement issues",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint C# files for brace placement issues.

By default, lints all .cs and .csx files in the current directory and
subdirectories, skipping bin/ and obj/ output folders. Specify paths to
lint specific files or directories.

Examples:
  beylint lint                    # Lint current directory
  beylint lint src/               # Lint src directory
  beylint lint Program.cs         # Lint single file
  beylint lint --fix              # Lint and auto-fix issues
  beylint lint --fix --dry-run    # Show fixes without applying
  beylint lint --format json      # Output as JSON for CI
  beylint lint --strict           # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values.
	// Only set values that were explicitly provided via CLI flags.
	cfg.Format = config.OutputFormat(flags.format)
	cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
	if cmd.Flags().Changed("indent-size") {
		cfg.Settings.IndentationSize = flags.indentSize
	}
	if cmd.Flags().Changed("tab-size") {
		cfg.Settings.TabSize = flags.tabSize
	}
	if flags.useTabs {
		cfg.Settings.UseTabs = true
	}
	if flags.allowDoWhile {
		cfg.Settings.AllowDoWhileOnClosingBrace = true
	}

	// Load and merge configuration.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	// Get working directory for config discovery.
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	// Build load options.
	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	// Log warnings from config loading.
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	// Log loaded configuration files.
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	// Create the C# parser.
	parser := csharpparser.New()

	// Use the default registry which has all built-in rules registered.
	registry := lint.DefaultRegistry

	// Create the lint engine.
	engine := lint.NewEngine(parser, registry)

	// Create the safety pipeline.
	pipeline := lint.NewPipeline(engine)

	// Create the runner.
	lintRunner := runner.New(pipeline)

	// Build runner options.
	runOpts := runner.Options{
		Paths:            args,
		WorkingDir:       workDir,
		Extensions:       runner.DefaultExtensions(),
		ExcludeGlobs:     finalCfg.Ignore,
		RespectGitignore: !flags.noGitignore,
		ContentChecks:    true,
		Jobs:             finalCfg.Jobs,
		Config:           finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	// Run linting.
	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	// Get color mode from persistent flag.
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto" // Default to auto if flag retrieval fails
	}

	// Parse output format.
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	// Create reporter.
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	// Report results.
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	// Determine exit code based on result.
	exitCode := ExitCodeFromResult(result, flags.strict)
	if exitCode != ExitSuccess {
		return ErrLintIssuesFound
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rule IDs")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noGitignore, "no-gitignore", false, "do not honor .gitignore when discovering files")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().IntVar(&flags.indentSize, "indent-size", 4, "indentation width in columns")
	cmd.Flags().IntVar(&flags.tabSize, "tab-size", 4, "tab display width in columns")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent rewritten lines with tabs")
	cmd.Flags().BoolVar(&flags.allowDoWhile, "allow-do-while", false,
		"allow '} while (...);' on the do-loop's closing brace line")
}
