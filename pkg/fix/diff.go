package fix

import (
	"fmt"
	"strings"
)

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// DiffLine is a single line in a diff hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a contiguous run of changes with surrounding context.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is a unified diff between original and modified content.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// contextLines is the number of context lines shown around a change.
const contextLines = 3

// GenerateDiff creates a unified diff for dry-run output. It anchors on the
// common prefix and suffix of the two line sequences, which is exact for the
// localized rewrites this tool produces. Returns nil when nothing changed.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	prefix := 0
	for prefix < len(origLines) && prefix < len(modLines) && origLines[prefix] == modLines[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(origLines)-prefix && suffix < len(modLines)-prefix &&
		origLines[len(origLines)-1-suffix] == modLines[len(modLines)-1-suffix] {
		suffix++
	}

	removed := origLines[prefix : len(origLines)-suffix]
	added := modLines[prefix : len(modLines)-suffix]
	if len(removed) == 0 && len(added) == 0 {
		return nil
	}

	ctxBefore := min(contextLines, prefix)
	ctxAfter := min(contextLines, suffix)

	var lines []DiffLine
	for _, l := range origLines[prefix-ctxBefore : prefix] {
		lines = append(lines, DiffLine{Kind: DiffLineContext, Content: l})
	}
	for _, l := range removed {
		lines = append(lines, DiffLine{Kind: DiffLineRemove, Content: l})
	}
	for _, l := range added {
		lines = append(lines, DiffLine{Kind: DiffLineAdd, Content: l})
	}
	for _, l := range origLines[len(origLines)-suffix : len(origLines)-suffix+ctxAfter] {
		lines = append(lines, DiffLine{Kind: DiffLineContext, Content: l})
	}

	hunk := DiffHunk{
		OriginalStart: prefix - ctxBefore + 1,
		OriginalCount: ctxBefore + len(removed) + ctxAfter,
		ModifiedStart: prefix - ctxBefore + 1,
		ModifiedCount: ctxBefore + len(added) + ctxAfter,
		Lines:         lines,
	}

	return &Diff{
		Path:      path,
		Hunks:     []DiffHunk{hunk},
		Additions: len(added),
		Deletions: len(removed),
	}
}

// HasChanges reports whether the diff contains any added or removed lines.
func (d *Diff) HasChanges() bool {
	return d != nil && (d.Additions > 0 || d.Deletions > 0)
}

// Render formats the diff in unified format.
func (d *Diff) Render() string {
	if d == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", d.Path, d.Path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, l := range h.Lines {
			switch l.Kind {
			case DiffLineAdd:
				sb.WriteString("+")
			case DiffLineRemove:
				sb.WriteString("-")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString(l.Content)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(content), "\n")
	return strings.Split(s, "\n")
}
