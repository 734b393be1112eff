package lint

import (
	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/cst"
	"github.com/beylint/beylint/pkg/fix"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	pos cst.SourcePosition,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// NewDiagnosticAtToken starts building a diagnostic at a token in a snapshot.
func NewDiagnosticAtToken(
	ruleID string,
	file *cst.FileSnapshot,
	tokenIdx int,
	message string,
) *DiagnosticBuilder {
	var filePath string
	var pos cst.SourcePosition
	if file != nil {
		filePath = file.Path
		pos = file.TokenPosition(tokenIdx)
	}
	return NewDiagnosticAt(ruleID, filePath, pos, message)
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix adds fix edits from an EditBuilder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
