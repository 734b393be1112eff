package lint

import (
	"strings"

	"github.com/beylint/beylint/pkg/cst"
)

// suppressionSpan is a line range during which a rule (or all rules, when
// RuleID is empty) is disabled. EndLine 0 means "to end of file".
type suppressionSpan struct {
	RuleID    string
	StartLine int
	EndLine   int
}

// SuppressionIndex holds the pragma disable/restore spans for one file.
// Spans are lexical: a disable takes effect on its own line and runs to the
// matching restore (or end of file).
type SuppressionIndex struct {
	spans []suppressionSpan
}

// BuildSuppressionIndex scans the file for "#pragma warning disable" and
// "#pragma warning restore" directives. Codes are comma-separated; a bare
// disable or restore applies to every rule.
func BuildSuppressionIndex(file *cst.FileSnapshot) *SuppressionIndex {
	idx := &SuppressionIndex{}
	open := make(map[string]int) // rule ID ("" = all) -> span index

	for lineNum := 1; lineNum <= len(file.Lines); lineNum++ {
		info := file.Lines[lineNum-1]
		line := strings.TrimSpace(string(file.Content[info.StartOffset:info.NewlineStart]))
		if !strings.HasPrefix(line, "#pragma") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 || fields[1] != "warning" {
			continue
		}

		action := fields[2]
		codes := parsePragmaCodes(fields[3:])

		switch action {
		case "disable":
			for _, code := range codes {
				if _, pending := open[code]; pending {
					continue
				}
				idx.spans = append(idx.spans, suppressionSpan{
					RuleID:    code,
					StartLine: lineNum,
				})
				open[code] = len(idx.spans) - 1
			}
		case "restore":
			for _, code := range codes {
				if code == "" {
					// A bare restore re-enables everything, closing every
					// open span whatever its code.
					for id, spanIdx := range open {
						idx.spans[spanIdx].EndLine = lineNum
						delete(open, id)
					}
					continue
				}
				if spanIdx, pending := open[code]; pending {
					idx.spans[spanIdx].EndLine = lineNum
					delete(open, code)
				}
			}
		}
	}

	return idx
}

// parsePragmaCodes splits the code list after disable/restore. An empty
// list means every rule, represented by a single empty ID.
func parsePragmaCodes(fields []string) []string {
	if len(fields) == 0 {
		return []string{""}
	}
	var codes []string
	for _, f := range fields {
		for _, code := range strings.Split(f, ",") {
			code = strings.TrimSpace(code)
			if code != "" {
				codes = append(codes, code)
			}
		}
	}
	if len(codes) == 0 {
		return []string{""}
	}
	return codes
}

// IsSuppressed reports whether the rule is disabled at the given line.
func (s *SuppressionIndex) IsSuppressed(ruleID string, line int) bool {
	for _, span := range s.spans {
		if span.RuleID != "" && span.RuleID != ruleID {
			continue
		}
		if line < span.StartLine {
			continue
		}
		if span.EndLine == 0 || line < span.EndLine {
			return true
		}
	}
	return false
}

// Filter removes diagnostics that fall inside a suppression span.
func (s *SuppressionIndex) Filter(diags []Diagnostic) []Diagnostic {
	if len(s.spans) == 0 {
		return diags
	}
	out := diags[:0]
	for _, d := range diags {
		if !s.IsSuppressed(d.RuleID, d.StartLine) {
			out = append(out, d)
		}
	}
	return out
}
