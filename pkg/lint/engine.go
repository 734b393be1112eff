package lint

import (
	"context"
	"fmt"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/cst"
	"github.com/beylint/beylint/pkg/fix"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Snapshot is the parsed file.
	Snapshot *cst.FileSnapshot

	// Diagnostics contains all issues found, suppression already applied.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or fixing was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits dropped due to overlap with earlier ones.
	SkippedEdits []fix.TextEdit

	// RuleErrors contains any internal errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Parser parses source files into FileSnapshots.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses and lints a single file. Rules run sequentially per file;
// concurrency happens across files in the runner, which is safe because the
// snapshot and settings are immutable.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	resolved := ResolveRules(e.Registry, cfg)
	suppressions := BuildSuppressionIndex(snapshot)

	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	var allEdits []fix.TextEdit

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, snapshot, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		diags = suppressions.Filter(diags)

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}

			if rr.AutoFix && len(diags[i].FixEdits) > 0 {
				allEdits = append(allEdits, diags[i].FixEdits...)
			}
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	if len(allEdits) > 0 {
		accepted, skipped, err := fix.PrepareEdits(allEdits, len(content))
		if err != nil {
			// Validation failure: keep diagnostics, drop all edits.
			result.Edits = nil
			result.SkippedEdits = nil
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
		}
	}

	return result, nil
}
