package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beylint/beylint/internal/configloader"
	"github.com/beylint/beylint/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Import layout settings from an .editorconfig file",
		Long: `Import indentation and brace layout settings from an existing
.editorconfig file into beylint format (.beylint.yml).

Consumed properties are indent_style, indent_size, tab_width,
csharp_new_line_before_open_brace, and dotnet_diagnostic severities for
beylint rules. All other .editorconfig keys are left for the editor.

If no input file is specified, the command looks for an .editorconfig
in the current directory.

Examples:
  beylint migrate                       Auto-detect and import .editorconfig
  beylint migrate sub/.editorconfig     Import a specific file
  beylint migrate --output config.yml   Write to custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".beylint.yml", "Output file path")

	return cmd
}

func runMigrate(flags *migrateFlags) error {
	logger := logging.NewInteractive()

	// Find input file
	inputPath := flags.input
	if inputPath == "" {
		// Auto-detect .editorconfig
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindEditorConfig(cwd)
		if inputPath == "" {
			return errors.New("no .editorconfig file found in current directory")
		}

		logger.Info("found editorconfig", logging.FieldPath, inputPath)
	}

	// Check input exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	// Make output path absolute
	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Check output exists
	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	// Perform import
	result, err := configloader.ConvertEditorConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	// Report warnings
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	// Serialize to YAML
	header := configloader.GenerateImportHeader(inputPath)
	content, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	// Write output
	if err := os.WriteFile(absOutput, content, configFilePermissions); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("import complete", logging.FieldPath, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the imported configuration")
	}

	logger.Info("the .editorconfig file stays in place for your editor")

	return nil
}
