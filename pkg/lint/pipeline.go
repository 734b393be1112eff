package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/fix"
	"github.com/beylint/beylint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix/re-lint loop. The brace rewrite is
// idempotent, so a second pass normally finds nothing; the bound guards
// against rules that feed each other.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file through
// the safety pipeline.
type PipelineResult struct {
	// FileResult holds diagnostics and edits from the final pass.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the content was changed by fixes.
	Modified bool

	// ModifiedContent is the new content after applying edits (nil if unchanged).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil otherwise).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g., concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Written is true if the file was written to disk.
	Written bool

	// FixPasses is the number of fix passes performed.
	FixPasses int

	// TotalEditsApplied is the number of edits applied across all passes.
	TotalEditsApplied int
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// MaxFixPasses bounds the fix loop (0 = DefaultMaxFixPasses).
	MaxFixPasses int
}

// PipelineOptionsFromConfig derives pipeline options from the config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{}
	}
	return PipelineOptions{
		Fix:    cfg.Fix,
		DryRun: cfg.DryRun,
	}
}

// Pipeline processes files through lint and optional fix application with
// stale-file detection and atomic writes.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a Pipeline around the engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile lints one file and, in fix mode, applies edits until no more
// are produced. Replacements within a pass are applied in a single atomic
// rewrite; passes re-parse so later edits always see fresh positions.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.Engine.LintFile(ctx, path, content, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
	}

	pr := &PipelineResult{
		FileResult:   result,
		Path:         path,
		OriginalInfo: info,
	}

	if !opts.Fix || !result.HasFixes() {
		return pr, nil
	}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	current := content
	for pass := 0; pass < maxPasses && result.HasFixes(); pass++ {
		select {
		case <-ctx.Done():
			// Abandon the batch: nothing has been written yet.
			return nil, fmt.Errorf("fix cancelled: %w", ctx.Err())
		default:
		}

		current = fix.ApplyEdits(current, result.Edits)
		pr.TotalEditsApplied += len(result.Edits)
		pr.FixPasses++

		result, err = p.Engine.LintFile(ctx, path, current, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
		}
		pr.FileResult = result
	}

	if bytes.Equal(current, content) {
		return pr, nil
	}

	pr.Modified = true
	pr.ModifiedContent = current

	if opts.DryRun {
		pr.Diff = fix.GenerateDiff(path, content, current)
		return pr, nil
	}

	// Stale-batch detection: refuse the write if the file changed under us.
	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, path, err)
	}
	if modified {
		pr.Skipped = true
		pr.SkipReason = "file modified since analysis"
		return pr, nil
	}

	if err := fsutil.WriteAtomic(ctx, path, current, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, path, err)
	}
	pr.Written = true

	return pr, nil
}
